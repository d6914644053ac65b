package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement is an external command the pipeline shells out to
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement
type Status struct {
	Requirement
	Available bool
	Path      string
	Detail    string
}

// DefaultRequirements returns the commands a file run needs
func DefaultRequirements(mediainfoPath, ffmpegPath string) []Requirement {
	return []Requirement{
		{Name: "MediaInfo", Command: mediainfoPath, Description: "metadata probe"},
		{Name: "FFmpeg", Command: ffmpegPath, Description: "stream extraction and conversion"},
	}
}

// FromCommands builds requirements for extra commands listed in config
func FromCommands(commands []string) []Requirement {
	reqs := make([]Requirement, 0, len(commands))
	for _, c := range commands {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		reqs = append(reqs, Requirement{Name: c, Command: c})
	}
	return reqs
}

// CheckBinaries resolves each requirement on PATH
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Missing returns the non-optional requirements that are unavailable
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
