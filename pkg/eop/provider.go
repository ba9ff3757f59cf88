package eop

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultURL is the IERS rapid-service distribution point for the rolling
// finals2000A.all file.
const DefaultURL = "https://datacenter.iers.org/data/9/finals2000A.all"

// Provider manages the on-disk finals file and its parsed form. The parsed
// table is snapshotted beside the source as msgpack so subsequent runs skip
// the (multi-MB, fixed-column) text parse.
type Provider struct {
	Dir        string        // directory holding finals2000A.all
	URL        string        // download source, DefaultURL when empty
	MaxAge     time.Duration // re-download when the file is older than this
	HTTPClient *http.Client
}

// Load returns the EOP table, refreshing the finals file from the IERS when
// it is missing or stale. Download failures degrade to the cached file if one
// exists, and to the built-in model (nil table) otherwise.
func (p *Provider) Load() (*Table, error) {
	path := filepath.Join(p.Dir, "finals2000A.all")

	st, err := os.Stat(path)
	stale := err != nil || (p.MaxAge > 0 && time.Since(st.ModTime()) > p.MaxAge)
	if stale {
		if derr := p.download(path); derr != nil {
			if err != nil {
				// No cached file either; proceed on built-in tables.
				log.Warnf("EOP download failed and no cached file exists, using built-in tables: %v", derr)
				return nil, nil
			}
			log.Warnf("EOP download failed, using cached file from %v: %v", st.ModTime().Format("2006-01-02"), derr)
		}
	}

	if t, ok := p.loadSnapshot(path); ok {
		return t, nil
	}
	t, err := Parse(path)
	if err != nil {
		return nil, err
	}
	p.saveSnapshot(path, t)
	return t, nil
}

func (p *Provider) download(path string) error {
	url := p.URL
	if url == "" {
		url = DefaultURL
	}
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	log.Infof("refreshing EOP data from %v", url)
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("error requesting EOP data: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("EOP server responded with status %v", resp.Status)
	}

	tmp := path + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("error writing EOP file: %v", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Invalidate the snapshot before the source moves into place.
	os.Remove(snapshotPath(path))
	return os.Rename(tmp, path)
}

func snapshotPath(path string) string {
	return path + ".msgpack"
}

// loadSnapshot returns the msgpack snapshot of the parsed table if it is
// newer than the source file.
func (p *Provider) loadSnapshot(path string) (*Table, bool) {
	snap := snapshotPath(path)
	sst, err := os.Stat(snap)
	if err != nil {
		return nil, false
	}
	fst, err := os.Stat(path)
	if err != nil || fst.ModTime().After(sst.ModTime()) {
		return nil, false
	}
	b, err := os.ReadFile(snap)
	if err != nil {
		return nil, false
	}
	var t Table
	if err := msgpack.Unmarshal(b, &t); err != nil {
		log.Debugf("discarding unreadable EOP snapshot %v: %v", snap, err)
		return nil, false
	}
	return &t, true
}

func (p *Provider) saveSnapshot(path string, t *Table) {
	b, err := msgpack.Marshal(t)
	if err != nil {
		log.Debugf("could not encode EOP snapshot: %v", err)
		return
	}
	if err := os.WriteFile(snapshotPath(path), b, 0o644); err != nil {
		log.Debugf("could not write EOP snapshot: %v", err)
	}
}
