// Package scan walks backup and patch directories and decodes every record
// it finds.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/mibdb/internal/digest"
	"github.com/samcharles93/mibdb/internal/eeprom"
	"github.com/samcharles93/mibdb/internal/ifs"
	"github.com/samcharles93/mibdb/internal/logger"
	"github.com/samcharles93/mibdb/internal/source"
	"github.com/samcharles93/mibdb/pkg/record"
)

const (
	DefaultEEPROMGlob    = "*-EEProm.bin"
	DefaultPartitionGlob = "ifs-root-part2-*"
	DefaultPatchGlob     = "*.ifs"
)

// Options control file discovery. Zero values select the defaults.
type Options struct {
	EEPROMGlob    string
	PartitionGlob string
	PatchGlob     string
	HashBuffer    int
	// Jobs bounds concurrent decodes. Values below 2 decode sequentially.
	Jobs int
}

func (o Options) withDefaults() Options {
	if o.EEPROMGlob == "" {
		o.EEPROMGlob = DefaultEEPROMGlob
	}
	if o.PartitionGlob == "" {
		o.PartitionGlob = DefaultPartitionGlob
	}
	if o.PatchGlob == "" {
		o.PatchGlob = DefaultPatchGlob
	}
	if o.HashBuffer <= 0 {
		o.HashBuffer = digest.DefaultBufferSize
	}
	if o.Jobs < 1 {
		o.Jobs = 1
	}
	return o
}

// Validate checks the glob patterns.
func (o Options) Validate() error {
	o = o.withDefaults()
	for name, pat := range map[string]string{
		"eeprom glob":    o.EEPROMGlob,
		"partition glob": o.PartitionGlob,
		"patch glob":     o.PatchGlob,
	} {
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("%s %q: %w", name, pat, err)
		}
	}
	return nil
}

// Backup is one device snapshot.
type Backup struct {
	Name       string // directory relative to the backups root
	Dir        string
	EEPROMPath string
	Config     *record.Record

	// Empty when the backup has no partition image.
	PartitionPath string
	Header        *record.Record
	PartitionSHA1 string
}

// Patch is one candidate patch file.
type Patch struct {
	Path   string
	Name   PatchName
	Header *record.Record // keys carry ifs.PatchSuffix
	SHA1   string
}

// Train is the train identifier the patch was built for.
func (p Patch) Train() string { return p.Name.Unit }

// Scanner decodes backups and patches.
type Scanner struct {
	opts Options
	log  logger.Logger
}

// New returns a Scanner. A nil log discards output.
func New(opts Options, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.Discard()
	}
	return &Scanner{opts: opts.withDefaults(), log: log}
}

// BackupSet is the outcome of a backup scan. Issues holds every warning and
// skipped record in path order.
type BackupSet struct {
	Backups []Backup
	Issues  []error
}

// PatchSet is the outcome of a patch scan.
type PatchSet struct {
	Patches []Patch
	Issues  []error
}

// Backups decodes every backup below root. Per-backup failures are logged and
// skipped; only a bad field table, a walk failure or cancellation is returned.
func (s *Scanner) Backups(ctx context.Context, root string) (*BackupSet, error) {
	paths, err := findFiles(root, s.opts.EEPROMGlob)
	if err != nil {
		return nil, fmt.Errorf("scan backups: %w", err)
	}
	s.log.Info("scanning backups", "root", root, "found", len(paths))

	backups := make([]*Backup, len(paths))
	issues := make([][]error, len(paths))
	err = s.each(ctx, len(paths), func(i int) error {
		b, warns, err := s.loadBackup(root, paths[i])
		issues[i] = warns
		if err != nil {
			if isFatal(err) {
				return err
			}
			skip := &SkipError{Path: paths[i], Err: err}
			s.log.Warn("skipping backup", "path", paths[i], "err", err)
			issues[i] = append(issues[i], skip)
			return nil
		}
		backups[i] = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &BackupSet{}
	for i, b := range backups {
		out.Issues = append(out.Issues, issues[i]...)
		if b != nil {
			out.Backups = append(out.Backups, *b)
		}
	}
	return out, nil
}

// Patches decodes every patch file below root. Malformed names and
// unreadable files are logged and skipped.
func (s *Scanner) Patches(ctx context.Context, root string) (*PatchSet, error) {
	paths, err := findFiles(root, s.opts.PatchGlob)
	if err != nil {
		return nil, fmt.Errorf("scan patches: %w", err)
	}
	s.log.Info("scanning patches", "root", root, "found", len(paths))

	patches := make([]*Patch, len(paths))
	issues := make([][]error, len(paths))
	err = s.each(ctx, len(paths), func(i int) error {
		p, warns, err := s.loadPatch(paths[i])
		issues[i] = warns
		if err != nil {
			if isFatal(err) {
				return err
			}
			s.log.Warn("skipping patch", "path", paths[i], "err", err)
			issues[i] = append(issues[i], &SkipError{Path: paths[i], Err: err})
			return nil
		}
		patches[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &PatchSet{}
	for i, p := range patches {
		out.Issues = append(out.Issues, issues[i]...)
		if p != nil {
			out.Patches = append(out.Patches, *p)
		}
	}
	return out, nil
}

// each runs fn for 0..n-1 on at most Jobs goroutines. Results are written by
// index so output order never depends on scheduling.
func (s *Scanner) each(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Jobs)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Scanner) loadBackup(root, eepromPath string) (*Backup, []error, error) {
	dir := filepath.Dir(eepromPath)
	name, err := filepath.Rel(root, dir)
	if err != nil {
		name = filepath.Base(dir)
	}
	log := s.log.With("backup", name)

	var warns []error
	src, err := source.Open(eepromPath, eeprom.Size)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = src.Close() }()

	if src.Size() != eeprom.Size {
		w := &UnexpectedSizeWarning{Path: eepromPath, Size: src.Size(), Want: eeprom.Size}
		log.Warn("unexpected eeprom size", "path", eepromPath, "size", humanize.IBytes(uint64(src.Size())), "want", eeprom.Size)
		warns = append(warns, w)
	}
	cfg, err := eeprom.Decode(src)
	if err != nil {
		return nil, warns, err
	}

	b := &Backup{Name: name, Dir: dir, EEPROMPath: eepromPath, Config: cfg}

	part, err := s.partitionFor(dir)
	if err != nil {
		return nil, warns, err
	}
	if part == "" {
		log.Info("no partition image in backup", "glob", s.opts.PartitionGlob)
		return b, warns, nil
	}

	hdr, err := readHeader(part, "")
	if err != nil {
		return nil, warns, fmt.Errorf("partition %s: %w", part, err)
	}
	if !ifs.Identify(hdr, "") {
		w := &UnidentifiedHeaderWarning{Path: part, Magic: hdr.String(ifs.FieldMagic), Marker: hdr.String(ifs.FieldMarker)}
		log.Warn("partition header not recognised", "path", part, "magic", w.Magic, "marker", w.Marker)
		warns = append(warns, w)
	}
	sum, err := digest.File(part, s.opts.HashBuffer)
	if err != nil {
		return nil, warns, err
	}
	b.PartitionPath = part
	b.Header = hdr
	b.PartitionSHA1 = sum
	log.Debug("decoded backup", "train", cfg.String(eeprom.FieldTrain), "partition", filepath.Base(part))
	return b, warns, nil
}

func (s *Scanner) loadPatch(path string) (*Patch, []error, error) {
	name, err := ParsePatchName(path)
	if err != nil {
		return nil, nil, err
	}
	hdr, err := readHeader(path, ifs.PatchSuffix)
	if err != nil {
		return nil, nil, err
	}

	var warns []error
	if !ifs.Identify(hdr, ifs.PatchSuffix) {
		w := &UnidentifiedHeaderWarning{
			Path:   path,
			Magic:  hdr.String(ifs.FieldMagic + ifs.PatchSuffix),
			Marker: hdr.String(ifs.FieldMarker + ifs.PatchSuffix),
		}
		s.log.Warn("patch header not recognised", "path", path, "magic", w.Magic, "marker", w.Marker)
		warns = append(warns, w)
	}
	sum, err := digest.File(path, s.opts.HashBuffer)
	if err != nil {
		return nil, warns, err
	}
	s.log.Debug("decoded patch", "path", path, "train", name.Unit)
	return &Patch{Path: path, Name: name, Header: hdr, SHA1: sum}, warns, nil
}

func readHeader(path, suffix string) (*record.Record, error) {
	src, err := source.Open(path, ifs.Layout.Extent())
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return ifs.Decode(src, suffix)
}

func isFatal(err error) bool {
	var werr *record.InvalidFieldWidthError
	return errors.As(err, &werr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// findFiles returns regular files below root whose base name matches pattern,
// case-insensitively, in lexical order.
func findFiles(root, pattern string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ok, err := matchFold(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// partitionFor returns the shallowest file below dir matching the partition
// glob, ties broken lexically. Sub-directories holding their own EEPROM dump
// belong to another backup and are not searched.
func (s *Scanner) partitionFor(dir string) (string, error) {
	best, bestDepth := "", -1
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			nested, err := hasMatch(path, s.opts.EEPROMGlob)
			if err != nil {
				return err
			}
			if nested {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ok, err := matchFold(s.opts.PartitionGlob, d.Name())
		if err != nil || !ok {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		depth := strings.Count(rel, string(filepath.Separator))
		if bestDepth < 0 || depth < bestDepth {
			best, bestDepth = path, depth
		}
		return nil
	})
	return best, err
}

// hasMatch reports whether dir directly contains a regular file matching
// pattern.
func hasMatch(dir, pattern string) (bool, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range ents {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := matchFold(pattern, e.Name())
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchFold(pattern, name string) (bool, error) {
	return filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
}
