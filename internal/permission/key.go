package permission

import "fmt"

// Key is a role-level permission flag.
type Key uint8

const (
	SendMessages Key = iota + 1
	ManageMessages
	DeleteMessagesOfOthers
	AddReactions
	ManageReactions
	ManageChannels
	ManageRoles
	BanMembers
	KickMembers
	ManageInvites
	ManageServer
	Administrator
	ManageWebhooks
	PingRolesAndEveryone
)

var keyNames = map[Key]string{
	SendMessages:           "sendMessages",
	ManageMessages:         "manageMessages",
	DeleteMessagesOfOthers: "deleteMessagesOfOthers",
	AddReactions:           "addReactions",
	ManageReactions:        "manageReactions",
	ManageChannels:         "manageChannels",
	ManageRoles:            "manageRoles",
	BanMembers:             "banMembers",
	KickMembers:            "kickMembers",
	ManageInvites:          "manageInvites",
	ManageServer:           "manageServer",
	Administrator:          "administrator",
	ManageWebhooks:         "manageWebhooks",
	PingRolesAndEveryone:   "pingRolesAndEveryone",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		m[name] = k
	}
	return m
}()

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

func ParseKey(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// ChannelKey is the subset of keys a channel override may set. Channel permission checks only accept these.
type ChannelKey uint8

const (
	ChannelSendMessages           = ChannelKey(SendMessages)
	ChannelManageMessages         = ChannelKey(ManageMessages)
	ChannelDeleteMessagesOfOthers = ChannelKey(DeleteMessagesOfOthers)
	ChannelAddReactions           = ChannelKey(AddReactions)
	ChannelManageReactions        = ChannelKey(ManageReactions)
)

func (c ChannelKey) Key() Key {
	return Key(c)
}

func (c ChannelKey) String() string {
	return Key(c).String()
}

func ParseChannelKey(name string) (ChannelKey, bool) {
	k, ok := keysByName[name]
	if !ok || !ChannelKeys.Contains(k) {
		return 0, false
	}
	return ChannelKey(k), true
}

// CategoryKey is the subset of keys a category override may set. Channel keys resolve through a category too,
// the rest only gate actions taken inside the category.
type CategoryKey uint8

const (
	CategoryManageChannels = CategoryKey(ManageChannels)
	CategoryManageRoles    = CategoryKey(ManageRoles)
	CategoryManageWebhooks = CategoryKey(ManageWebhooks)
	CategoryManageInvites  = CategoryKey(ManageInvites)
)

func (c CategoryKey) Key() Key {
	return Key(c)
}

func (c CategoryKey) String() string {
	return Key(c).String()
}

func ParseCategoryKey(name string) (CategoryKey, bool) {
	k, ok := keysByName[name]
	if !ok || !CategoryKeys.Contains(k) {
		return 0, false
	}
	return CategoryKey(k), true
}

// KeySet is the set of keys a given kind of record is allowed to carry.
type KeySet map[Key]struct{}

func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s KeySet) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}

var (
	// RoleKeys are the flags a role can carry.
	RoleKeys = NewKeySet(SendMessages, ManageMessages, ManageChannels, ManageRoles, BanMembers, KickMembers,
		ManageInvites, ManageServer, Administrator, AddReactions, ManageReactions, ManageWebhooks, PingRolesAndEveryone)

	ChannelKeys = NewKeySet(SendMessages, ManageMessages, DeleteMessagesOfOthers, AddReactions, ManageReactions)

	CategoryKeys = NewKeySet(SendMessages, ManageMessages, DeleteMessagesOfOthers, AddReactions, ManageReactions,
		ManageChannels, ManageRoles, ManageWebhooks, ManageInvites)
)
