package main

import (
	"os"

	"github.com/MKhiriev/go-course-catalog/cmd/catalogadm/cmd"
	"github.com/MKhiriev/go-course-catalog/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if buildVersion != "" {
		cmd.Build = models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
