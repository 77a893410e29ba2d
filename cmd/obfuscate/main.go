// Command obfuscate is a thin demonstration CLI that runs a handful of toy
// circuits through both the LIN and LZ obfuscation schemes against the
// in-memory dummy multilinear map, printing whether each evaluation landed
// on the all-zero branch. It exists to exercise the library end to end; it
// is not a production obfuscator frontend.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/lin"
	"github.com/dendisuhubdy/circ-obfuscation/lz"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
	"github.com/dendisuhubdy/circ-obfuscation/prng"
	"github.com/dendisuhubdy/circ-obfuscation/telemetry"
)

func main() {
	scheme := flag.String("scheme", "lin", "scheme to run: lin or lz")
	ell := flag.Int("ell", 1, "symbol length (must evenly divide the demo circuit's 3 inputs)")
	sigma := flag.Bool("sigma", false, "use the sigma (unary) alphabet instead of binary")
	npowers := flag.Int("npowers", 4, "number of pre-published raising powers (lz only)")
	nthreads := flag.Int("nthreads", 4, "evaluator worker count")
	seed := flag.Int("seed", 1, "PRNG seed byte")
	flag.Parse()

	c := demoCircuit()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(*seed)
	}
	genRNG, err := prng.NewKeyed(key)
	if err != nil {
		log.Fatalf("obfuscate: prng: %v", err)
	}

	sink := telemetry.Discard{}

	switch *scheme {
	case "lin":
		runLIN(c, *ell, *sigma, *nthreads, genRNG, sink)
	case "lz":
		runLZ(c, *ell, *sigma, *npowers, *nthreads, genRNG, sink)
	default:
		fmt.Fprintf(os.Stderr, "obfuscate: unknown scheme %q (want lin or lz)\n", *scheme)
		os.Exit(2)
	}
}

// demoCircuit computes (a+b)-c, a 3-input circuit exercising ADD and SUB.
func demoCircuit() *acirc.Circuit {
	c := &acirc.Circuit{NInputs: 3}
	a := c.Input(0)
	b := c.Input(1)
	d := c.Input(2)
	c.MarkOutput(c.Sub(c.Add(a, b), d))
	return c
}

func inputRows() [][]int {
	return [][]int{{0, 0, 0}, {1, 1, 0}, {1, 0, 1}, {0, 1, 1}}
}

func runLIN(c *acirc.Circuit, ell int, sigma bool, nthreads int, genRNG *prng.Keyed, sink telemetry.Sink) {
	op, err := lin.DeriveParams(c, ell, sigma)
	if err != nil {
		log.Fatalf("obfuscate: lin params: %v", err)
	}
	sk, pp, err := (mmap.Dummy{}).GenerateKeys(mmap.KeyGenParams{NSlots: op.NSlots()}, genRNG)
	if err != nil {
		log.Fatalf("obfuscate: lin keygen: %v", err)
	}
	obf := lin.New(op, pp)
	if err := lin.Obfuscate(obf, sk, c, genRNG, sink); err != nil {
		log.Fatalf("obfuscate: lin obfuscate: %v", err)
	}
	for _, row := range inputRows() {
		res, err := lin.Evaluate(obf, c, row, nthreads, sink)
		if err != nil {
			log.Fatalf("obfuscate: lin evaluate %v: %v", row, err)
		}
		fmt.Printf("lin  inputs=%v outputs=%v\n", row, res.Outputs)
	}
}

func runLZ(c *acirc.Circuit, ell int, sigma bool, npowers, nthreads int, genRNG *prng.Keyed, sink telemetry.Sink) {
	op, err := lz.DeriveParams(c, ell, sigma, npowers)
	if err != nil {
		log.Fatalf("obfuscate: lz params: %v", err)
	}
	sk, pp, err := (mmap.Dummy{}).GenerateKeys(mmap.KeyGenParams{NSlots: op.NSlots()}, genRNG)
	if err != nil {
		log.Fatalf("obfuscate: lz keygen: %v", err)
	}
	obf := lz.New(op, pp)
	if err := lz.Obfuscate(obf, sk, c, genRNG, sink); err != nil {
		log.Fatalf("obfuscate: lz obfuscate: %v", err)
	}
	for _, row := range inputRows() {
		res, err := lz.Evaluate(obf, c, row, nthreads, sink)
		if err != nil {
			log.Fatalf("obfuscate: lz evaluate %v: %v", row, err)
		}
		fmt.Printf("lz   inputs=%v outputs=%v max_npowers=%d\n", row, res.Outputs, res.MaxNPowers)
	}
}

