package wkhtmltox

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/researchagg/hostprep/internal/operations/common"
	"github.com/sirupsen/logrus"
)

type Downloader struct {
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewDownloader(timeout time.Duration) *Downloader {
	if timeout <= 0 {
		timeout = time.Duration(DownloadTimeout) * time.Second
	}
	return &Downloader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logrus.WithField("component", "wkhtmltox-downloader"),
	}
}

// CheckReachable sends a HEAD request to confirm the resolved URL points
// at an existing resource before committing to a full download. This
// separates a bad codename mapping from a hosting or network failure.
func (d *Downloader) CheckReachable(ctx context.Context, url string) error {
	d.logger.WithField("url", url).Info("Checking package URL reachability")

	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("package URL %s is not reachable: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("package URL %s is not reachable: status %d", url, resp.StatusCode)
	}

	d.logger.WithField("status", resp.StatusCode).Debug("Package URL is reachable")
	return nil
}

// DownloadArtifact downloads the package to destPath. The payload lands
// in a temp file first, so a failed transfer never leaves a partial
// artifact at the destination.
func (d *Downloader) DownloadArtifact(ctx context.Context, url, destPath string) error {
	d.logger.WithFields(logrus.Fields{
		"url":  url,
		"dest": destPath,
	}).Info("Starting package download")

	tempFile, err := os.CreateTemp(filepath.Dir(destPath), "wkhtmltox-download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tempFile.Close()
		os.Remove(tempFile.Name())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logger.WithError(err).Error("Failed to download package")
		return fmt.Errorf("failed to download package: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	written, err := common.CopyWithContext(ctx, tempFile, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to save package: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync package file: %w", err)
	}
	tempFile.Close()

	if err := common.MoveFile(d.logger, tempFile.Name(), destPath); err != nil {
		return fmt.Errorf("failed to move package to destination: %w", err)
	}

	d.logger.WithField("bytes", written).Info("Package download completed")
	return nil
}

// VerifyChecksum checks the artifact against an expected SHA256, when
// one is configured.
func (d *Downloader) VerifyChecksum(artifactPath, expectedSHA256 string) error {
	return common.VerifyChecksum(d.logger, artifactPath, expectedSHA256)
}
