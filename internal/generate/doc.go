// Package generate runs a full pack generation.
//
// A Generator sequences the pack builder, the replicator and the archiver
// for each pack and reduces the outcome to a single Status. Progress is
// reported through a ProgressEvent callback and logged.
//
// Usage:
//
//	gen := generate.NewGenerator(settings, generate.WithProgress(func(e generate.ProgressEvent) {
//	    fmt.Println(e.Message)
//	}))
//	if status := gen.Datapack(entries); status != generate.StatusSuccess {
//	    return status
//	}
//	status := gen.Resourcepack(entries)
package generate
