package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/LVivona/mrkle"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)

	hashName := flag.String("hash", "sha256", "hasher name (see -list)")
	inputPath := flag.String("in", "", "file of newline-delimited leaf payloads (default: stdin)")
	proofArg := flag.String("proof", "", "comma-separated leaf indices to prove, e.g. 0,3,7")
	list := flag.Bool("list", false, "print supported hasher names and exit")
	flag.Parse()

	if *list {
		for _, name := range mrkle.SupportedHashers() {
			fmt.Println(name)
		}
		return
	}

	desc, err := mrkle.HasherByName(*hashName)
	if err != nil {
		log.Fatalf("[mrkl] %v", err)
	}

	leaves, err := readLeaves(*inputPath)
	if err != nil {
		log.Fatalf("[mrkl] %v", err)
	}

	tree, err := mrkle.Build(leaves, desc)
	if err != nil {
		log.Fatalf("[mrkl] build: %v", err)
	}
	for _, w := range tree.Warnings() {
		log.Printf("[mrkl] warning: %s", w)
	}

	root, err := tree.Root()
	if err != nil {
		log.Fatalf("[mrkl] %v", err)
	}

	if *proofArg == "" {
		fmt.Println(root.Hex())
		return
	}

	indices, err := parseIndices(*proofArg)
	if err != nil {
		log.Fatalf("[mrkl] %v", err)
	}

	if len(indices) == 1 {
		p, err := tree.Proof(indices[0])
		if err != nil {
			log.Fatalf("[mrkl] proof: %v", err)
		}
		emitJSON(p)
		return
	}

	mp, err := tree.MultiProof(indices)
	if err != nil {
		log.Fatalf("[mrkl] proof: %v", err)
	}
	emitJSON(mp)
}

func readLeaves(path string) ([][]byte, error) {
	f := os.Stdin
	if path != "" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	var leaves [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		leaves = append(leaves, []byte(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return leaves, nil
}

func parseIndices(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		i, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", p, err)
		}
		out = append(out, i)
	}
	return out, nil
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("[mrkl] encode: %v", err)
	}
}
