package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/notargets/VecKernel/device"
)

// CreateTestDevice creates an Engine for testing, preferring parallel
// backends. The VECKERNEL_DEVICE environment variable overrides the
// probe order with a single mode name ("CUDA", "OpenMP", "Serial") or
// a raw OCCA properties JSON string.
func CreateTestDevice(verbose ...bool) *device.Engine {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	if override := strings.TrimSpace(os.Getenv("VECKERNEL_DEVICE")); override != "" {
		if strings.HasPrefix(override, "{") {
			backends = []string{override}
		} else {
			backends = []string{fmt.Sprintf(`{"mode": %q}`, override)}
		}
	}

	for _, props := range backends {
		eng, err := device.NewEngine(props)
		if err == nil {
			if len(verbose) > 0 && verbose[0] {
				fmt.Printf("Created %s Device\n", eng.Mode())
			}
			return eng
		}
	}

	// Should not reach here
	panic("Failed to create any Device")
}
