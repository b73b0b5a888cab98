package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseId parses the textual form of a resource or image id. Ids are positive integers.
func ParseId(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidId, s)
	}
	return id, nil
}

func FormatId(id int64) string {
	return strconv.FormatInt(id, 10)
}
