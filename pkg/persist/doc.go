// Package persist provides the storage backends a table is written to.
//
// Every backend implements frame.Persister: it receives a file name and
// the serialized content. Backends compose:
//
//	base := persist.NewFile("out")
//	p := persist.NewAsync(persist.NewCompressed(
//		persist.NewInstrumented(base, "file", log), compression.Zstd), log)
//	_ = table.WriteCSV(ctx, p, "weather.csv", frame.CSVOptions{})
//	err := p.Wait()
//
// New builds that stack from a config.PersistConfig.
package persist
