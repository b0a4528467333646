package contacts

import (
	"regexp"
	"slices"
	"strings"
)

const maxAliasLength = 255

var (
	// Ten subscriber digits, optionally preceded by a one-digit country code.
	phonePattern = regexp.MustCompile(`^\+[0-9]?[0-9]{10}$`)
	aliasPattern = regexp.MustCompile(`^[a-z0-9_\-]+$`)
)

// ValidateType fails unless value is one of allowed. field names the request
// member in the error message.
func ValidateType[T ~string](field string, value T, allowed []T) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	return validationError(
		"Invalid value provided - Value '%s' at '%s' failed to satisfy constraint: Member must satisfy enum value set: [%s]",
		value, field, strings.Join(names, ", "),
	)
}

// ValidateDeliveryAddress checks SimpleAddress against the format required by
// channelType. The channel type itself must already be valid.
func ValidateDeliveryAddress(address DeliveryAddress, channelType ChannelType) error {
	value := address.SimpleAddress
	if value == "" {
		return validationError("Invalid value provided - DeliveryAddress.SimpleAddress is required")
	}
	switch channelType {
	case ChannelTypeSMS, ChannelTypeVoice:
		if !phonePattern.MatchString(value) {
			return validationError("Invalid value provided - '%s' is not a valid phone number for %s channels, expected '+' followed by 10 digits and an optional country code digit", value, channelType)
		}
	case ChannelTypeEmail:
		if !isEmailAddress(value) {
			return validationError("Invalid value provided - '%s' is not a valid email address", value)
		}
	}
	return nil
}

// ValidateAlias enforces the alias character set and length.
func ValidateAlias(alias string) error {
	if alias == "" {
		return validationError("Invalid value provided - Alias is required")
	}
	if len(alias) > maxAliasLength {
		return validationError("Invalid value provided - Alias must be at most %d characters", maxAliasLength)
	}
	if !aliasPattern.MatchString(alias) {
		return validationError("Invalid value provided - Value '%s' at 'alias' failed to satisfy constraint: Member must satisfy regular expression pattern: ^[a-z0-9_\\-]*$", alias)
	}
	return nil
}

func isEmailAddress(value string) bool {
	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	return !strings.Contains(domain, "@")
}
