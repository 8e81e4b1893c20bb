package service

import (
	"net/http"

	"chat-service/internal/auth"
	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maxBodySize = 1 << 20

type httpHandler struct {
	logger   *zap.SugaredLogger
	svc      *ServerService
	verifier *auth.Verifier
}

// NewRouter exposes the service over JSON. Every route except the gateway requires a bearer token.
func NewRouter(logger *zap.SugaredLogger, svc *ServerService, verifier *auth.Verifier, gatewayHandler http.Handler) *mux.Router {
	h := &httpHandler{logger: logger, svc: svc, verifier: verifier}

	router := mux.NewRouter()
	router.Handle("/gateway", gatewayHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.Use(h.authenticate)

	api.HandleFunc("/servers", h.createServer).Methods(http.MethodPost)
	api.HandleFunc("/servers/{serverId}/join", h.joinServer).Methods(http.MethodPost)
	api.HandleFunc("/servers/{serverId}/roles", h.listRoles).Methods(http.MethodGet)
	api.HandleFunc("/servers/{serverId}/roles", h.createRole).Methods(http.MethodPost)
	api.HandleFunc("/servers/{serverId}/roles/positions", h.reorderRoles).Methods(http.MethodPut)
	api.HandleFunc("/servers/{serverId}/members/{userId}/roles/{roleId}", h.addRoleToMember).Methods(http.MethodPut)
	api.HandleFunc("/servers/{serverId}/members/{userId}/roles/{roleId}", h.removeRoleFromMember).Methods(http.MethodDelete)
	api.HandleFunc("/servers/{serverId}/categories", h.createCategory).Methods(http.MethodPost)
	api.HandleFunc("/servers/{serverId}/channels", h.createChannel).Methods(http.MethodPost)
	api.HandleFunc("/servers/{serverId}/permissions/{key}", h.checkPermission).Methods(http.MethodGet)
	api.HandleFunc("/servers/{serverId}/channels/{channelId}/permissions/{key}", h.checkChannelPermission).Methods(http.MethodGet)
	api.HandleFunc("/servers/{serverId}/categories/{categoryId}/permissions/{key}", h.checkCategoryPermission).Methods(http.MethodGet)

	api.HandleFunc("/roles/{roleId}", h.updateRole).Methods(http.MethodPatch)
	api.HandleFunc("/roles/{roleId}", h.deleteRole).Methods(http.MethodDelete)
	api.HandleFunc("/channels/{channelId}/overrides/{roleId}", h.setChannelOverride).Methods(http.MethodPut)
	api.HandleFunc("/categories/{categoryId}/overrides/{roleId}", h.setCategoryOverride).Methods(http.MethodPut)

	api.HandleFunc("/presence", h.onlineUsers).Methods(http.MethodGet)
	api.HandleFunc("/presence/{userId}", h.userPresence).Methods(http.MethodGet)

	return router
}

func (h *httpHandler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, err := h.verifier.FromRequest(r)
		if err != nil {
			h.writeJSON(w, http.StatusUnauthorized, errorBody{Code: codes.Unauthenticated.String(), Message: err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserId(r.Context(), userId)))
	})
}

func actor(r *http.Request) string {
	userId, _ := auth.UserIdFrom(r.Context())
	return userId
}

// subject is the user a query is about, the caller unless ?userId= is given.
func subject(r *http.Request) string {
	if userId := r.URL.Query().Get("userId"); userId != "" {
		return userId
	}
	return actor(r)
}

func (h *httpHandler) createServer(w http.ResponseWriter, r *http.Request) {
	var req CreateServerRequest
	if !h.decode(w, r, &req) {
		return
	}
	server, err := h.svc.CreateServer(r.Context(), actor(r), req)
	h.respond(w, http.StatusCreated, server, err)
}

func (h *httpHandler) joinServer(w http.ResponseWriter, r *http.Request) {
	member, err := h.svc.JoinServer(r.Context(), actor(r), mux.Vars(r)["serverId"])
	h.respond(w, http.StatusCreated, member, err)
}

func (h *httpHandler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.svc.ListRoles(r.Context(), actor(r), mux.Vars(r)["serverId"])
	h.respond(w, http.StatusOK, roles, err)
}

func (h *httpHandler) createRole(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if !h.decode(w, r, &req) {
		return
	}
	role, err := h.svc.CreateRole(r.Context(), actor(r), mux.Vars(r)["serverId"], req)
	h.respond(w, http.StatusCreated, role, err)
}

func (h *httpHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if !h.decode(w, r, &req) {
		return
	}
	role, err := h.svc.UpdateRole(r.Context(), actor(r), mux.Vars(r)["roleId"], req)
	h.respond(w, http.StatusOK, role, err)
}

func (h *httpHandler) deleteRole(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteRole(r.Context(), actor(r), mux.Vars(r)["roleId"])
	h.respond(w, http.StatusNoContent, nil, err)
}

func (h *httpHandler) reorderRoles(w http.ResponseWriter, r *http.Request) {
	var req ReorderRolesRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.svc.ReorderRoles(r.Context(), actor(r), mux.Vars(r)["serverId"], req)
	h.respond(w, http.StatusNoContent, nil, err)
}

func (h *httpHandler) addRoleToMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := h.svc.AddRoleToMember(r.Context(), actor(r), vars["serverId"], vars["userId"], vars["roleId"])
	h.respond(w, http.StatusNoContent, nil, err)
}

func (h *httpHandler) removeRoleFromMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := h.svc.RemoveRoleFromMember(r.Context(), actor(r), vars["serverId"], vars["userId"], vars["roleId"])
	h.respond(w, http.StatusNoContent, nil, err)
}

func (h *httpHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.svc.CreateCategory(r.Context(), actor(r), mux.Vars(r)["serverId"], req)
	h.respond(w, http.StatusCreated, category, err)
}

func (h *httpHandler) createChannel(w http.ResponseWriter, r *http.Request) {
	var req CreateChannelRequest
	if !h.decode(w, r, &req) {
		return
	}
	channel, err := h.svc.CreateChannel(r.Context(), actor(r), mux.Vars(r)["serverId"], req)
	h.respond(w, http.StatusCreated, channel, err)
}

func (h *httpHandler) setChannelOverride(w http.ResponseWriter, r *http.Request) {
	var req SetOverrideRequest
	if !h.decode(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	err := h.svc.SetChannelOverride(r.Context(), actor(r), vars["channelId"], vars["roleId"], req)
	h.respond(w, http.StatusNoContent, nil, err)
}

func (h *httpHandler) setCategoryOverride(w http.ResponseWriter, r *http.Request) {
	var req SetOverrideRequest
	if !h.decode(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	err := h.svc.SetCategoryOverride(r.Context(), actor(r), vars["categoryId"], vars["roleId"], req)
	h.respond(w, http.StatusNoContent, nil, err)
}

func (h *httpHandler) checkPermission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp, err := h.svc.CheckPermission(r.Context(), actor(r), vars["serverId"], subject(r), vars["key"])
	h.respond(w, http.StatusOK, resp, err)
}

func (h *httpHandler) checkChannelPermission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp, err := h.svc.CheckChannelPermission(r.Context(), actor(r), vars["serverId"], subject(r), vars["channelId"], vars["key"])
	h.respond(w, http.StatusOK, resp, err)
}

func (h *httpHandler) checkCategoryPermission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp, err := h.svc.CheckCategoryPermission(r.Context(), actor(r), vars["serverId"], subject(r), vars["categoryId"], vars["key"])
	h.respond(w, http.StatusOK, resp, err)
}

func (h *httpHandler) onlineUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.OnlineUsers(r.Context())
	h.respond(w, http.StatusOK, resp, err)
}

func (h *httpHandler) userPresence(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.UserPresence(r.Context(), mux.Vars(r)["userId"])
	h.respond(w, http.StatusOK, resp, err)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *httpHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Code: codes.InvalidArgument.String(), Message: "malformed request body"})
		return false
	}
	return true
}

func (h *httpHandler) respond(w http.ResponseWriter, okStatus int, body any, err error) {
	if err != nil {
		st := status.Convert(err)
		h.writeJSON(w, httpStatus(st.Code()), errorBody{Code: st.Code().String(), Message: st.Message()})
		return
	}
	if okStatus == http.StatusNoContent {
		w.WriteHeader(okStatus)
		return
	}
	h.writeJSON(w, okStatus, body)
}

func (h *httpHandler) writeJSON(w http.ResponseWriter, code int, body any) {
	payload, err := sonic.Marshal(body)
	if err != nil {
		h.logger.Errorw("failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(payload)
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
