// Package files provides file system discovery and housekeeping for
// the support stats application.
//
// Discovery finds workbooks, finished reports and error logs in the
// directories the pipeline reads and writes. Manager removes stale
// uploads so the uploads directory does not grow without bound.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.DataDir)
//
//	// Newest uploaded workbook
//	workbooks, err := discovery.FindWorkbooks(paths.UploadsDir)
//	latest, ok := files.Latest(workbooks)
package files
