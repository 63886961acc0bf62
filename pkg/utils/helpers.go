package utils

import (
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//ListDir returns a list of files/ directories in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if files, err := ioutil.ReadDir(path); err != nil {
		return nil, errors.Wrap(err, "ListDir: Error")
	} else {
		for _, f := range files {
			names = append(names, f.Name())
		}
	}

	return names, nil
}

//TrimExt returns file name without its extension ("match.mp4" -> "match")
func TrimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

//FileExists returns true if given path exists and is a regular file
func FileExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
