package util

import (
	"fmt"
	"time"
)

// FormatSize converts bytes to a human-readable string (KB, MB, GB).
func FormatSize(sizeBytes int64) string {
	if sizeBytes < 1024 {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	sizeKB := float64(sizeBytes) / 1024
	if sizeKB < 1024 {
		return fmt.Sprintf("%.1f KB", sizeKB)
	}
	sizeMB := sizeKB / 1024
	if sizeMB < 1024 {
		return fmt.Sprintf("%.1f MB", sizeMB)
	}
	return fmt.Sprintf("%.1f GB", sizeMB/1024)
}

// FormatSpeed converts bytes per second to a human-readable rate.
func FormatSpeed(bytesPerSecond float64) string {
	if bytesPerSecond < 1024 {
		return fmt.Sprintf("%.1f B/s", bytesPerSecond)
	}
	kbPerSecond := bytesPerSecond / 1024
	if kbPerSecond < 1024 {
		return fmt.Sprintf("%.1f KB/s", kbPerSecond)
	}
	mbPerSecond := kbPerSecond / 1024
	if mbPerSecond < 1024 {
		return fmt.Sprintf("%.1f MB/s", mbPerSecond)
	}
	return fmt.Sprintf("%.1f GB/s", mbPerSecond/1024)
}

// Rate returns bytes per second over elapsed, or 0 before any time passed.
func Rate(bytes int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(bytes) / elapsed.Seconds()
}

// FormatElapsed renders d as 42s, 3m05s or 1h02m.
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
