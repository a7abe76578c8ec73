package fcache

import "sync"

// Each cache directory is exclusively owned by one live Cache for the
// lifetime of the process. The registry prevents two instances from
// wiping each other's artifacts.
var (
	dirsMu      sync.Mutex
	claimedDirs = make(map[string]struct{})
)

func claimDir(dir string) error {
	dirsMu.Lock()
	defer dirsMu.Unlock()
	if _, ok := claimedDirs[dir]; ok {
		return ErrCacheDirInUse
	}
	claimedDirs[dir] = struct{}{}
	return nil
}

func releaseDir(dir string) {
	dirsMu.Lock()
	defer dirsMu.Unlock()
	delete(claimedDirs, dir)
}
