package enrich

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/frame"
)

// Archive : stages rows as csv under the work dir and uploads them to the archive bucket
func (j *Job) Archive(ctx context.Context, headers []string, rows []frame.Row) (err error) {
	runDir := filepath.Join(j.opts.WorkDir, "run_id="+j.runID)
	defer func() {
		if rmErr := j.fs.RemoveAll(runDir); rmErr != nil {
			err = multierror.Append(err, fmt.Errorf("could not clean up %s : %w", runDir, rmErr))
		}
	}()

	if err := j.fs.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	fileName := j.opts.Table + ".csv"
	localPath := filepath.Join(runDir, fileName)
	if err := writeCSV(j.fs, localPath, headers, rows); err != nil {
		return err
	}

	f, err := j.fs.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	key := path.Join(j.opts.ArchivePrefix, "date="+time.Now().UTC().Format("2006-01-02"), "run_id="+j.runID, fileName)
	if err := j.UploadFile(ctx, f, j.opts.ArchiveBucket, key); err != nil {
		return err
	}
	j.logger.Info().Str("bucket", j.opts.ArchiveBucket).Str("key", key).Int("rows", len(rows)).Msg("archived enriched rows")
	return nil
}

func writeCSV(fs afero.Fs, name string, headers []string, rows []frame.Row) error {
	f, err := fs.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, r := range rows {
		rec := make([]string, len(r))
		for i, v := range r {
			rec[i] = frame.FormatCell(v)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// UploadFile : puts f at bucket/key , retrying up to MaxRetry attempts
func (j *Job) UploadFile(ctx context.Context, f afero.File, bucket string, key string) error {
	var (
		retryCtr int
		err      error
	)
	for retryCtr < j.opts.MaxRetry {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("upload of key (%s) stopped after %d attempts : %w", key, retryCtr, ctxErr)
		}
		if _, err = f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		_, err = j.targetFs.PutObjectWithContext(ctx, &s3.PutObjectInput{
			Body:   f,
			Bucket: &bucket,
			Key:    &key,
		})
		if err == nil {
			return nil
		}
		retryCtr++
		j.logger.Warn().Err(err).Str("key", key).Int("attempt", retryCtr).Msg("archive upload failed")
	}
	return fmt.Errorf("Attempted uploading key (%s) %d times with no success : original_err=%w", key, retryCtr, err)
}
