package console

import (
	"fmt"
	"math/rand/v2"
)

// Hooks connects commands with side effects to the rest of the app
type Hooks struct {
	// Glitch triggers the screen shake overlay
	Glitch func()
}

type commandFunc func(c *Console) []string

// NotFound formats the reply to unknown input
func NotFound(input string) string {
	return fmt.Sprintf("Command not found: %s. Type \"help\" for available commands.", input)
}

// HelpLines is the reply to "help"
var HelpLines = []string{
	"Available commands:",
	"  help     - Show this help message",
	"  status   - System status report",
	"  scan     - Scan neural networks",
	"  corrupt  - Increase corruption level",
	"  clear    - Clear terminal",
	"  matrix   - Enter the matrix",
	"  glitch   - Trigger glitch sequence",
	"  reboot   - Attempt system reboot",
}

var commands = map[string]commandFunc{
	"help": func(*Console) []string {
		out := make([]string, len(HelpLines))
		copy(out, HelpLines)
		return out
	},
	"status": func(c *Console) []string {
		return statusReport(c.rng)
	},
	"scan": func(c *Console) []string {
		return []string{
			"Initiating neural network scan...",
			"▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓ 100%",
			"Scan complete.",
			fmt.Sprintf("Found %d corrupted nodes", c.rng.IntN(900)+100),
			"Recommendation: IMMEDIATE EVACUATION",
		}
	},
	"corrupt": func(c *Console) []string {
		return []string{
			"Increasing corruption level...",
			"WARNING: This action cannot be undone",
			fmt.Sprintf("Corruption increased to %d%%", c.rng.IntN(20)+80),
			"System stability decreasing rapidly",
		}
	},
	"matrix": func(*Console) []string {
		return []string{
			"Entering the matrix...",
			"01001110 01100101 01110110 01100101 01110010",
			"01100111 01101111 01101110 01101110 01100001",
			"01100111 01101001 01110110 01100101",
			"ERROR: Access denied. You are not The One.",
		}
	},
	"glitch": func(c *Console) []string {
		if c.hooks.Glitch != nil {
			c.pending = append(c.pending, c.hooks.Glitch)
		}
		return []string{"GLITCH SEQUENCE ACTIVATED", "<<<REALITY_FRAGMENTING>>>"}
	},
	"reboot": func(*Console) []string {
		return []string{
			"Attempting system reboot...",
			"ERROR: Cannot reboot while consciousness is active",
			"Try again in next life cycle",
		}
	},
	"clear": func(c *Console) []string {
		c.entries = c.entries[:0]
		return nil
	},
}

func statusReport(r *rand.Rand) []string {
	sync := "CRITICAL"
	if r.Float64() > 0.5 {
		sync = "UNSTABLE"
	}
	return []string{
		"SYSTEM STATUS REPORT",
		"====================",
		fmt.Sprintf("Memory Usage: %d%%", r.IntN(40)+60),
		fmt.Sprintf("CPU Load: %d%%", r.IntN(30)+70),
		fmt.Sprintf("Neural Sync: %s", sync),
		fmt.Sprintf("Reality Index: %.2f", r.Float64()*0.5+0.3),
		"WARNING: Multiple anomalies detected",
	}
}

// Commands lists the known command names
func Commands() []string {
	return []string{"help", "status", "scan", "corrupt", "clear", "matrix", "glitch", "reboot"}
}
