package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"go-column-rules/config"
	"go-column-rules/pkg/logger"
)

// Fetcher downloads a remote dataset into a local directory.
type Fetcher struct {
	dir        string
	httpClient *http.Client
	log        logger.LoggerI
}

// NewFetcher saves downloads into dir.
func NewFetcher(dir string, hc *http.Client, log logger.LoggerI) *Fetcher {
	if hc == nil {
		hc = &http.Client{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Fetcher{dir: dir, httpClient: hc, log: log}
}

// Fetch GETs url and streams the body to <dir>/user_data.csv, returning the
// written path. A workbook body is converted to CSV first. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.log.Info("fetching dataset", logger.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "build dataset request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "fetch dataset")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("network response was not ok. Status: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", errors.Wrap(err, "create download directory")
	}

	path := filepath.Join(f.dir, config.DatasetFileName)
	tmp, err := os.CreateTemp(f.dir, ".download-*")
	if err != nil {
		return "", errors.Wrap(err, "create download file")
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "write dataset")
	}
	defer os.Remove(tmp.Name())

	workbook, err := IsWorkbook(tmp.Name())
	if err != nil {
		return "", err
	}
	if workbook {
		table, err := Load(tmp.Name())
		if err != nil {
			return "", err
		}
		if err := WriteCSV(path, table); err != nil {
			return "", err
		}
		f.log.Info("workbook converted to CSV", logger.String("path", path), logger.Int("rows", len(table.Rows)))
		return path, nil
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrap(err, "store dataset")
	}

	f.log.Info("dataset downloaded", logger.String("path", path), logger.Int64("bytes", n))
	return path, nil
}
