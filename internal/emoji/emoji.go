// Package emoji maps symbolic keys to emoji, or to ASCII fallbacks when
// emoji output is disabled.
package emoji

import "sync/atomic"

// emojiMap holds [emoji, fallback] per key
var emojiMap = map[string][2]string{
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"statistics": {"📊", "[STATS]"},
	"summary":    {"📝", "[SUM]"},
	"frame":      {"🖼️", "[VIEW]"},
	"settings":   {"⚙️", "[CFG]"},
	"history":    {"📈", "[HIST]"},
	"trophy":     {"🏆", "[1st]"},
	"running":    {"▶️", "[RUN]"},
	"stopped":    {"⏹️", "[STOP]"},
	"ready":      {"⏸️", "[READY]"},
	"timer":      {"⏱️", "[T]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},

	"sorting":   {"📶", "[SRT]"},
	"search":    {"🔍", "[SRC]"},
	"graph":     {"🕸️", "[GRF]"},
	"dynamic":   {"🧩", "[DP]"},
	"greedy":    {"🪙", "[GRD]"},
	"numerical": {"🔢", "[NUM]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// Status returns the symbol for a runner state
func Status(running bool, ran bool) string {
	switch {
	case running:
		return GetEmoji("running")
	case ran:
		return GetEmoji("stopped")
	default:
		return GetEmoji("ready")
	}
}
