package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPU describes one logical processor.
type CPU struct {
	Model    string
	SpeedMHz float64
}

// PlatformInfo answers the os command's queries.
type PlatformInfo interface {
	EOL() string
	CPUs() ([]CPU, error)
	HomeDir() (string, error)
	Username() (string, error)
	Architecture() string
}

// HostPlatform reports on the machine the process runs on.
type HostPlatform struct{}

// NewHostPlatform creates a HostPlatform
func NewHostPlatform() *HostPlatform {
	return &HostPlatform{}
}

// EOL returns the platform's default line terminator
func (HostPlatform) EOL() string {
	return eolFor(runtime.GOOS)
}

func eolFor(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// CPUs returns one entry per logical CPU. When the host does not expose CPU
// details, entries carry an "unknown" model and zero speed.
func (HostPlatform) CPUs() ([]CPU, error) {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return unknownCPUs(runtime.NumCPU()), nil
	}
	return expandCPUInfo(infos), nil
}

// expandCPUInfo flattens per-package entries (darwin, windows) into one entry
// per core. Linux already reports one entry per logical CPU.
func expandCPUInfo(infos []cpu.InfoStat) []CPU {
	var cpus []CPU
	for _, info := range infos {
		n := int(info.Cores)
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cpus = append(cpus, CPU{Model: info.ModelName, SpeedMHz: info.Mhz})
		}
	}
	return cpus
}

func unknownCPUs(n int) []CPU {
	cpus := make([]CPU, n)
	for i := range cpus {
		cpus[i] = CPU{Model: "unknown"}
	}
	return cpus
}

// HomeDir returns the current user's home directory
func (HostPlatform) HomeDir() (string, error) {
	return HomeDirectory()
}

// Username returns the system login name
func (HostPlatform) Username() (string, error) {
	return CurrentUsername()
}

// Architecture returns the CPU architecture the binary was built for
func (HostPlatform) Architecture() string {
	return runtime.GOARCH
}
