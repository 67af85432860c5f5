// Command binauralize builds HRIR sample sets and renders mono sources
// through them.
//
// Usage:
//
//	binauralize bake [flags] <database-dir>
//	binauralize inspect [flags] <set.hrir>
//	binauralize render [flags] <in.wav> <out.wav>
//	binauralize play [flags] <in.wav>
//
// Examples:
//
//	binauralize bake --layout mit -o kemar.hrir ./mit-kemar/compact
//	binauralize inspect --at 0,90 kemar.hrir
//	binauralize render --set kemar.hrir --scene orbit.yaml voice.wav voice-3d.wav
//	binauralize play --set kemar.hrir --at 30,-45 voice.wav
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "binauralize:", err)
		os.Exit(1)
	}
}
