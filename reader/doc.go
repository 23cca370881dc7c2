// Package reader reads Apache Parquet files into row maps suitable for
// binding into filter expressions.
//
// Reading a single file:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	rows, err := r.ReadAll()
//
// ReadGlob expands wildcard patterns ("data/*.parquet") and tags each
// row with a "_file" column naming its source. Columns lists the leaf
// columns of a file with the type names the expression language uses.
//
// The package uses github.com/segmentio/parquet-go for the underlying
// parquet operations.
package reader
