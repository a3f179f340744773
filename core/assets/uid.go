package assets

import (
	"fmt"
	"strings"

	"asset-cache/core/utils"

	"github.com/google/uuid"
)

// UIDPolicy selects how identities are derived for newly registered locations.
type UIDPolicy string

const (
	// UIDRandom assigns a random (v4) UUID.
	UIDRandom UIDPolicy = "random"
	// UIDDeterministic derives a name-based (v5) UUID from the normalized key.
	UIDDeterministic UIDPolicy = "deterministic"
	// UIDLegacy is deterministic for keys without a file extension and random otherwise.
	UIDLegacy UIDPolicy = "legacy"
)

// uidNamespace scopes name-based UUIDs to this module.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("asset-cache"))

// ParseUIDPolicy validates a policy name. The empty string selects UIDRandom.
func ParseUIDPolicy(s string) (UIDPolicy, error) {
	switch p := UIDPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return UIDRandom, nil
	case UIDRandom, UIDDeterministic, UIDLegacy:
		return p, nil
	default:
		return "", fmt.Errorf("invalid uid policy %q", s)
	}
}

// UIDGenerator produces identities for asset locations.
type UIDGenerator interface {
	Generate(key string) uuid.UUID
}

type policyGenerator struct {
	policy UIDPolicy
}

// NewUIDGenerator returns a generator implementing policy.
func NewUIDGenerator(policy UIDPolicy) UIDGenerator {
	return policyGenerator{policy: policy}
}

func (g policyGenerator) Generate(key string) uuid.UUID {
	switch g.policy {
	case UIDDeterministic:
		return deterministicUID(key)
	case UIDLegacy:
		if utils.Extension(key) == "" {
			return deterministicUID(key)
		}
		return uuid.New()
	default:
		return uuid.New()
	}
}

func deterministicUID(key string) uuid.UUID {
	return uuid.NewSHA1(uidNamespace, []byte(utils.NormalizeKey(key)))
}
