package cache

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type BackendKind string

const (
	BackendMemory     BackendKind = "memory"
	BackendPersistent BackendKind = "persistent"
)

// Policy decides how long entries of one data type live and which backend holds them.
type Policy struct {
	TTL     time.Duration
	Backend BackendKind
}

// PolicyTable maps a logical data-type tag to its policy. Every data type used by a
// memoized call resolves here; unmapped types get the default policy.
type PolicyTable struct {
	policies map[string]Policy
	fallback Policy
}

// Data types known to the agent. Tags double as the logical cache key for
// parameterless lookups.
const (
	TypeDoctorsList        = "doctors_list"
	TypeDoctorAvailability = "doctor_availability"
	TypeAppointments       = "appointments"
	TypeConversations      = "conversations"
	TypeMessages           = "messages"
	TypeSessionStatus      = "session_status"
	TypeCalendarStatus     = "calendar_status"
	TypeUserProfile        = "user_profile"
)

func NewPolicyTable() *PolicyTable {
	return &PolicyTable{
		policies: map[string]Policy{
			TypeDoctorsList:        {TTL: 10 * time.Minute, Backend: BackendPersistent},
			TypeDoctorAvailability: {TTL: 2 * time.Minute, Backend: BackendMemory},
			TypeAppointments:       {TTL: time.Minute, Backend: BackendMemory},
			TypeConversations:      {TTL: 30 * time.Second, Backend: BackendMemory},
			TypeMessages:           {TTL: 15 * time.Second, Backend: BackendMemory},
			TypeSessionStatus:      {TTL: 5 * time.Second, Backend: BackendMemory},
			TypeCalendarStatus:     {TTL: 5 * time.Minute, Backend: BackendPersistent},
			TypeUserProfile:        {TTL: 30 * time.Minute, Backend: BackendPersistent},
		},
		fallback: Policy{TTL: time.Minute, Backend: BackendMemory},
	}
}

func (t *PolicyTable) Resolve(dataType string) Policy {
	if p, exists := t.policies[dataType]; exists {
		return p
	}
	return t.fallback
}

func (t *PolicyTable) Set(dataType string, policy Policy) {
	t.policies[dataType] = policy
}

type policyFileEntry struct {
	TTL     string `yaml:"ttl"`
	Backend string `yaml:"backend"`
}

// LoadOverrides merges policies from a yaml file into the table. TTLs use Go
// duration syntax ("30s", "10m"); unknown backend names fall back to memory.
func (t *PolicyTable) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read policy file %s", path)
	}

	var entries map[string]policyFileEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return errors.Wrapf(err, "failed to parse policy file %s", path)
	}

	for dataType, e := range entries {
		ttl, err := time.ParseDuration(e.TTL)
		if err != nil {
			return errors.Wrapf(err, "invalid ttl for data type %s", dataType)
		}
		backend := BackendKind(e.Backend)
		if backend != BackendPersistent {
			backend = BackendMemory
		}
		t.policies[dataType] = Policy{TTL: ttl, Backend: backend}
	}
	return nil
}
