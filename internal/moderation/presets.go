package moderation

import (
	"fmt"

	"github.com/accordapp/moderation/internal/gibberish"
	"github.com/accordapp/moderation/internal/wordlist"
)

// Two policy presets ship with the engine. Which one applies to which field
// is a product decision made by the caller; neither is a hard-coded default.

// StrictConfig is the broad stance: general-purpose deny-list with the
// reclaimed-term carve-out, contact-info detection enabled.
func StrictConfig() Config {
	return Config{
		Name:             "strict",
		Deny:             wordlist.BroadList(),
		Allow:            wordlist.ReclaimedTerms(),
		CheckContactInfo: true,
		Gibberish:        gibberish.DefaultConfig(),
	}
}

// PermissiveConfig is the curated stance: severe terms only (slurs, hate
// speech, scams), contact-info detection disabled on the grounds that
// matched users may exchange contact info freely.
func PermissiveConfig() Config {
	return Config{
		Name:             "permissive",
		Deny:             wordlist.SevereList(),
		Allow:            wordlist.ReclaimedTerms(),
		CheckContactInfo: false,
		Gibberish:        gibberish.DefaultConfig(),
	}
}

// Strict returns a Policy built from StrictConfig.
func Strict() *Policy { return NewPolicy(StrictConfig()) }

// Permissive returns a Policy built from PermissiveConfig.
func Permissive() *Policy { return NewPolicy(PermissiveConfig()) }

// ConfigByName resolves a preset name from configuration ("strict" or
// "permissive").
func ConfigByName(name string) (Config, error) {
	switch name {
	case "strict":
		return StrictConfig(), nil
	case "permissive":
		return PermissiveConfig(), nil
	default:
		return Config{}, fmt.Errorf("moderation: unknown policy preset %q", name)
	}
}
