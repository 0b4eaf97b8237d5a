package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/williamokano/s3meta/pkg/ops"
	"github.com/williamokano/s3meta/pkg/storage"
)

// TimeLayout renders timestamps in UTC with an explicit offset
const TimeLayout = "2006-01-02 15:04:05-07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func rule(n int) string {
	return strings.Repeat("-", n)
}

// Buckets prints the bucket table in the order given
func Buckets(w io.Writer, buckets []storage.BucketInfo) error {
	var b strings.Builder

	b.WriteString("\nExisting Buckets:\n")
	fmt.Fprintf(&b, "%-30s   %s\n", "Bucket Name:", "Create Date:")
	b.WriteString(rule(65) + "\n")
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "%-30s   %s\n", bucket.Name, formatTime(bucket.CreationDate))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Created confirms a bucket creation
func Created(w io.Writer, bucket, location string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nBucket %s created successfully\n", bucket)
	if location != "" {
		fmt.Fprintf(&b, "Location: %s\n", location)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Objects prints the object table followed by the number of rows printed
func Objects(w io.Writer, objects []storage.ObjectInfo) error {
	var b strings.Builder

	b.WriteString("\nExisting Objects:\n")
	fmt.Fprintf(&b, "%-50s   %-32s   %s\n", "Object Key:", "Last Modified:", "Object Size:")
	b.WriteString(rule(100) + "\n")

	count := 0
	for _, obj := range objects {
		fmt.Fprintf(&b, "%-50s   %s   %12d\n", obj.Key, formatTime(obj.LastModified), obj.Size)
		count++
	}
	fmt.Fprintf(&b, "\nNumber of Objects: %d\n\n", count)

	_, err := io.WriteString(w, b.String())
	return err
}

// Uploads prints the uploaded files, then any per-file failures
func Uploads(w io.Writer, result ops.UploadResult) error {
	var b strings.Builder

	b.WriteString("\nUploaded Files:\n")
	fmt.Fprintf(&b, "%-30s   %-25s   %-17s   %s\n", "Object Key:", "Last Modified:", "Object Size:", "Type:")
	b.WriteString(rule(100) + "\n")
	for _, r := range result.Records {
		fmt.Fprintf(&b, "%-30s   %s   %12d   %10s\n", r.Key, formatTime(r.LastModified), r.Size, r.Type)
	}

	if len(result.Failures) > 0 {
		b.WriteString("\nFailed uploads:\n")
		for _, f := range result.Failures {
			fmt.Fprintf(&b, "Upload of %s failed: %v\n", f.Key, f.Err)
		}
	}

	fmt.Fprintf(&b, "\nNumber of uploaded files: %d\n\n", result.Uploaded())

	_, err := io.WriteString(w, b.String())
	return err
}
