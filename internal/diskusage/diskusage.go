// Package diskusage reports volume capacity for a directory.
package diskusage

import (
	"github.com/shirou/gopsutil/v4/disk"
)

// Usage describes the volume holding a directory.
type Usage struct {
	// TotalBytes is the volume's total capacity.
	TotalBytes uint64

	// FreeBytes is the space currently available to the process.
	FreeBytes uint64
}

// Check reports usage for the volume containing dir.
func Check(dir string) (Usage, error) {
	st, err := disk.Usage(dir)
	if err != nil {
		return Usage{}, err
	}
	return Usage{TotalBytes: st.Total, FreeBytes: st.Free}, nil
}
