// Package output renders filtered rows to JSON Lines, CSV, or an
// aligned terminal table.
//
// All formatters take rows as []map[string]interface{} and implement
// the Formatter interface:
//
//	f, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := f.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
//
// CSV and table output use the sorted union of column names across all
// rows as the header, so rows with differing columns still line up.
package output
