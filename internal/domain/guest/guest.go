package guest

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/wedding-api/internal/domain/common"
)

// Group classifies a credential
type Group string

const (
	GroupFriends Group = "friends"
	GroupFamily  Group = "family"
	GroupAdmin   Group = "admin"
)

// Groups lists every accepted group
func Groups() []Group {
	return []Group{GroupFriends, GroupFamily, GroupAdmin}
}

// ParseGroup accepts exactly one of the enumerated group names
func ParseGroup(s string) (Group, bool) {
	for _, g := range Groups() {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

func (g Group) IsAdmin() bool {
	return g == GroupAdmin
}

func (g *Group) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*g = Group(v)
	case []byte:
		*g = Group(v)
	default:
		return fmt.Errorf("cannot scan %T into Group", value)
	}
	return nil
}

func (g Group) Value() (driver.Value, error) {
	return string(g), nil
}

// Credential is a guest password and the group it unlocks
type Credential struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Password  string    `json:"password" gorm:"not null;uniqueIndex:uq_guest_passwords_password"`
	GuestName *string   `json:"guest_name" gorm:"size:150"`
	Group     Group     `json:"guest_group" gorm:"column:guest_group;type:guest_group;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Credential) TableName() string {
	return "guest_passwords"
}

// BeforeCreate sets a UUID before creating the record
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewCredential builds a credential; an empty name is stored as NULL
func NewCredential(password, name string, group Group) *Credential {
	return &Credential{
		Password:  password,
		GuestName: optionalName(name),
		Group:     group,
	}
}

// DisplayName returns the guest name or an empty string
func (c *Credential) DisplayName() string {
	if c.GuestName == nil {
		return ""
	}
	return *c.GuestName
}

// Validate checks the invariants every stored credential must hold
func (c *Credential) Validate() error {
	if strings.TrimSpace(c.Password) == "" {
		return fmt.Errorf("password is required")
	}
	if _, ok := ParseGroup(string(c.Group)); !ok {
		return fmt.Errorf("invalid guest_group %q", c.Group)
	}
	return nil
}

// Patch is a partial update; unset fields are left unchanged. Setting
// GuestName to nil or an empty string clears the name.
type Patch struct {
	Password  common.Option[string]
	GuestName common.Option[*string]
	Group     common.Option[Group]
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return !p.Password.Set && !p.GuestName.Set && !p.Group.Set
}

// Apply merges the set fields into c
func (p Patch) Apply(c *Credential) {
	if v, ok := p.Password.Get(); ok {
		c.Password = v
	}
	if v, ok := p.GuestName.Get(); ok {
		if v == nil {
			c.GuestName = nil
		} else {
			c.GuestName = optionalName(*v)
		}
	}
	if v, ok := p.Group.Get(); ok {
		c.Group = v
	}
}

func optionalName(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}
