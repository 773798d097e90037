//go:build !unix

package source

import "os"

func mapFile(*os.File, int) ([]byte, bool) { return nil, false }

func unmapFile([]byte) error { return nil }
