package model

import (
	"chat-service/internal/permission"
)

// EveryoneRoleName is the name of the default role every server has exactly one of.
// Members hold it implicitly, it is never listed in Member.Roles.
const EveryoneRoleName = "@everyone"

type Server struct {
	Id      string `bson:"_id" json:"id"`
	Name    string `bson:"name" json:"name"`
	OwnerId string `bson:"ownerId" json:"ownerId"`
}

type Role struct {
	Id       string `bson:"_id" json:"id"`
	ServerId string `bson:"serverId" json:"serverId"`
	Name     string `bson:"name" json:"name"`

	// Position orders roles within a server, higher wins. Ties are allowed.
	Position    int32            `bson:"position" json:"position"`
	Permissions permission.Flags `bson:"permissions" json:"permissions"`
}

func (r *Role) IsEveryone() bool {
	return r.Name == EveryoneRoleName
}

func (r *Role) IsAdministrator() bool {
	return r.Permissions.Get(permission.Administrator) == permission.Allow
}

// Member does not have an equivalent role list for @everyone
// as the default role applies to every member.
type Member struct {
	Id       string   `bson:"_id" json:"id"`
	ServerId string   `bson:"serverId" json:"serverId"`
	UserId   string   `bson:"userId" json:"userId"`
	Roles    []string `bson:"roles" json:"roles"`
}

type Category struct {
	Id          string               `bson:"_id" json:"id"`
	ServerId    string               `bson:"serverId" json:"serverId"`
	Name        string               `bson:"name" json:"name"`
	Permissions permission.Overrides `bson:"permissions" json:"permissions"`
}

type Channel struct {
	Id          string               `bson:"_id" json:"id"`
	ServerId    string               `bson:"serverId" json:"serverId"`
	CategoryId  *string              `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Name        string               `bson:"name" json:"name"`
	Permissions permission.Overrides `bson:"permissions" json:"permissions"`
}
