// Package report scrapes numeric metrics out of synthesis report files.
//
// A report directory holds one file per design point, named after the
// parameter it was synthesized with:
//
//	area8.rpt   area16.rpt   power8.rpt   power16.rpt ...
//
// Each file is searched for a single metric line, for example
//
//	Total cell area:              1234.50
//	Cell Leakage Power     =   12.3456 uW
//
// and the result is a Set mapping the filename parameter to the metric.
//
// Scraping is fail-fast: the first file whose name or contents cannot be
// decoded aborts the whole directory and no partial Set is returned.
//
// # Usage
//
//	set, err := report.ScrapeDir("../results/igzo/arbiter_puf", report.PowerSpec())
//	if err != nil {
//		var cerr *report.ContentError
//		if errors.As(err, &cerr) {
//			fmt.Println(cerr.Contents)
//		}
//		return err
//	}
//	xs, ys := set.Arrays(1)
package report
