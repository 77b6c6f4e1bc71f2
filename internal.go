package main

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/rs/zerolog/log"
)

func pingHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		return
	})
}

// browsers POST CSP violation reports here, we keep them in S3 for review
func JSONReportHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s3svc := s3.New(deps.awssess)

		EasternTZ, _ := time.LoadLocation("America/New_York")
		currentDateTime := time.Now().In(EasternTZ)
		currentMonth := currentDateTime.Format("2006-01")

		b, _ := io.ReadAll(r.Body)
		cspReport := string(b)

		sha1Hash := sha1.New()
		io.WriteString(sha1Hash, cspReport)
		logKey := fmt.Sprintf("csp-violations/%s/%x", currentMonth, string(sha1Hash.Sum(nil)))

		inputPutObj := &s3.PutObjectInput{
			Body:   aws.ReadSeekCloser(strings.NewReader(cspReport)),
			Bucket: aws.String(deps.cfg.AWS.CSPBucket),
			Key:    aws.String(logKey),
		}

		_, err := s3svc.PutObject(inputPutObj)
		if err != nil {
			log.Warn().Err(err).
				Str("bucket", deps.cfg.AWS.CSPBucket).
				Str("key", logKey).
				Msg("Failed to upload to S3 bucket")
		}
		return
	})
}
