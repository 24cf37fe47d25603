package shared

import (
	"strconv"
	"strings"

	"riverside/shared/constant"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt64(value string) *int64 {
	if value == constant.Empty {
		return nil
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int64")

		return nil
	}

	return &intValue
}

// SplitCSV splits a comma separated query value, dropping blanks.
func SplitCSV(value string) []string {
	if value == constant.Empty {
		return nil
	}

	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != constant.Empty {
			res = append(res, part)
		}
	}

	return res
}

func BuildCacheKey(prefix string, parts ...string) string {
	return prefix + cacheKeySeparator + strings.Join(parts, cacheKeySeparator)
}
