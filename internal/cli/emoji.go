package cli

import (
	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// GetCategoryEmoji returns the symbol shown next to a category heading
func GetCategoryEmoji(c algorithm.Category) string {
	return GetEmoji(string(c))
}

// GetResultEmoji returns the symbol for a finished or interrupted run
func GetResultEmoji(stopped bool) string {
	if stopped {
		return GetEmoji("stopped")
	}
	return GetEmoji("success")
}
