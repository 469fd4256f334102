package parser

import (
	"path"
	"strings"
)

// Path helpers in this file are pure string algebra: they never touch the
// file system and treat Windows and POSIX paths the same way on every
// platform. Output always uses forward slashes.

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// splitVolume splits a slashed path into its volume prefix and the rest.
// Drive letters are upper-cased; a UNC prefix keeps one of its two slashes
// in the volume so that path.Clean on the rest cannot collapse it.
func splitVolume(p string) (vol, rest string) {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return strings.ToUpper(p[:1]) + ":", p[2:]
	}
	if strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "///") {
		return "/", p[1:]
	}
	return "", p
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// CanonicalPath converts separators to '/', collapses '.' and '..'
// segments and duplicate separators, and upper-cases a drive letter.
func CanonicalPath(p string) string {
	if p == "" {
		return ""
	}
	vol, rest := splitVolume(toSlash(p))
	if rest == "" {
		return vol
	}
	return vol + path.Clean(rest)
}

// IsAbsPath reports whether p is rooted, either POSIX style ("/x"),
// drive style ("C:\x", "C:/x") or UNC ("\\host\share").
func IsAbsPath(p string) bool {
	vol, rest := splitVolume(toSlash(p))
	if vol == "/" {
		return true
	}
	return strings.HasPrefix(rest, "/")
}

// ResolveProjectPath returns the absolute path of filePath as reported
// relative to the directory containing projectFile. An already absolute
// filePath is only canonicalized. Returns "" if either input is empty.
func ResolveProjectPath(projectFile, filePath string) string {
	if projectFile == "" || filePath == "" {
		return ""
	}
	if IsAbsPath(filePath) {
		return CanonicalPath(filePath)
	}
	vol, rest := splitVolume(toSlash(projectFile))
	return CanonicalPath(vol + path.Join(path.Dir(rest), toSlash(filePath)))
}

// RelativePath expresses target relative to baseDir. It reports false
// when either input is empty or target does not lie strictly under
// baseDir.
func RelativePath(baseDir, target string) (string, bool) {
	if baseDir == "" || target == "" {
		return "", false
	}
	base := CanonicalPath(baseDir)
	t := CanonicalPath(target)

	if base == "." {
		if IsAbsPath(t) || t == "." || t == ".." || strings.HasPrefix(t, "../") {
			return "", false
		}
		return t, true
	}

	prefix := base
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(t, prefix) || len(t) == len(prefix) {
		return "", false
	}
	return t[len(prefix):], true
}
