package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"sleuth/internal/fileutil"
)

// Access modes checked by CheckDirectoryAccess.
const (
	ReadOnly  = unix.R_OK | unix.X_OK
	ReadWrite = unix.R_OK | unix.W_OK | unix.X_OK
)

// CheckDirectoryAccess verifies that the directory exists and grants mode.
func CheckDirectoryAccess(name, path string, mode uint32) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	label := "read ok"
	if mode&unix.W_OK != 0 {
		label = "read/write ok"
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}

// CheckOriginals verifies that the originals folder holds at least one file
// registration would pick up.
func CheckOriginals(path string, exts []string, foldCase bool) Result {
	const name = "Original images"
	paths, err := fileutil.ListImages(path, fileutil.NewExtensionMatcher(exts, foldCase))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if len(paths) == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("no files with extensions %v in %s", exts, path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d candidate files (first: %s)", len(paths), filepath.Base(paths[0]))}
}
