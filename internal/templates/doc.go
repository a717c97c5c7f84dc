// Package templates provides project scaffolding for hashroute apps.
//
// Each template writes a hashroute.toml, a routes.toml manifest and a
// templates/ directory with one HTML fragment per route.
//
// # Available Templates
//
//   - minimal: a home page and an about page
//   - docs: a documentation site using sub-routes (#/docs/page/intro)
//   - s3: like minimal, with the manifest read from an S3 bucket
//
// # Usage
//
//	tmpl, err := templates.Get("docs")
//	if err != nil {
//	    return err
//	}
//	if err := tmpl.Create(projectDir, templates.Config{Title: "Handbook"}); err != nil {
//	    return err
//	}
//
// # Template Variables
//
//	{{.Title}}   - Application title
//	{{.Addr}}    - Listen address
//	{{.Bucket}}  - S3 bucket (s3 template)
//	{{.Region}}  - S3 region (s3 template)
package templates
