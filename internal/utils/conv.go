package utils

import (
	"strconv"
)

// StringToUint converts string to uint, returns 0 if error
func StringToUint(s string) uint {
	i, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(i)
}

// UintToString formats a uint id for URLs
func UintToString(i uint) string {
	return strconv.FormatUint(uint64(i), 10)
}
