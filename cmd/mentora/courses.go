package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/stemsi/mentora-cli/internal/render"
)

func runCourses(e *env, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ExitOnError)
	courseID := fs.String("course", "", "show one course with its modules")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireAuth(e); err != nil {
		return err
	}

	ctx := context.Background()

	if *courseID != "" {
		course, err := e.client.GetCourse(ctx, *courseID)
		if err != nil {
			return err
		}
		render.CourseDetail(os.Stdout, course)
		return nil
	}

	courses, err := e.client.ListCourses(ctx)
	if err != nil {
		return err
	}
	render.Courses(os.Stdout, courses)
	return nil
}

func runCertificates(e *env, args []string) error {
	fs := flag.NewFlagSet("certificates", flag.ExitOnError)
	download := fs.String("download", "", "certificate ID to download as PDF")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireAuth(e); err != nil {
		return err
	}

	ctx := context.Background()
	certs, err := e.client.ListCertificates(ctx)
	if err != nil {
		return err
	}

	if *download == "" {
		render.Certificates(os.Stdout, certs)
		return nil
	}

	for _, cert := range certs {
		if cert.ID != *download {
			continue
		}
		path, err := e.client.DownloadCertificate(ctx, cert, e.cfg.DownloadDir)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
		return nil
	}
	return fmt.Errorf("no certificate with ID %q", *download)
}
