// Package audio reads metadata from disc tracks.
//
// Probe fills in what a catalog leaves out: the title from the ID3 TIT2
// frame and the length from TLEN. Files without an ID3 tag, such as most
// Ogg Vorbis tracks, simply yield an empty Info.
//
//	info, err := audio.Probe(fsys, "tracks/intro.mp3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Title, info.Length)
package audio
