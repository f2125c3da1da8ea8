package fileutil

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FS is the read-only subset of billy.Filesystem used for existence checks
type FS interface {
	Stat(filename string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
}

// NativeFS is a billy.Filesystem over the host filesystem without a chroot,
// so "../x" and "/abs" paths behave as they do for the shell.
type NativeFS struct {
	osfs.ChrootOS
}

// Chroot returns a filesystem rooted at the provided path.
//
//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (n *NativeFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (n *NativeFS) Root() string {
	return "/"
}

// NewNativeFS creates a filesystem that acts like the native one
func NewNativeFS() *NativeFS {
	return &NativeFS{}
}

var _ billy.Filesystem = (*NativeFS)(nil)
