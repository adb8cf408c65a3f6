package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/leslie-fei/fixedalloc"
)

func main() {
	var memType string
	var memKey string

	flag.StringVar(&memType, "t", "go", "memory type: go, shm or mmap")
	flag.StringVar(&memKey, "k", "/tmp/FixedallocExample", "shared memory key or mmap file path")
	flag.Parse()

	config := &fixedalloc.Config{MemoryKey: memKey}
	switch memType {
	case "go":
		config.MemoryType = fixedalloc.GO
	case "shm":
		config.MemoryType = fixedalloc.SHM
	case "mmap":
		config.MemoryType = fixedalloc.MMAP
	default:
		log.Fatalf("unknown memory type: %s", memType)
	}

	arena, err := fixedalloc.NewArena(1*fixedalloc.MB, config)
	if err != nil {
		log.Fatal(err)
	}
	defer arena.Close()

	pool, err := fixedalloc.NewPool(256, 1024, fixedalloc.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	stack, err := fixedalloc.NewStack(1*fixedalloc.MB, fixedalloc.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer stack.Close()

	chunks := make([][]byte, 0)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Available commands: alloc <bytes>, push <bytes>, pop <bytes>, chunk, unchunk, reset, stats, exit")

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit":
			return
		case "alloc":
			n, err := parseBytes(parts)
			if err != nil {
				fmt.Println(err)
				continue
			}
			b, err := arena.Alloc(n)
			if errors.Is(err, fixedalloc.ErrNoSpace) {
				fmt.Println("arena full")
				continue
			}
			fmt.Printf("arena: %d bytes at offset %d\n", len(b), arena.Used()-n)
		case "push":
			n, err := parseBytes(parts)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if _, err = stack.Alloc(n); err != nil {
				fmt.Println("stack full")
				continue
			}
			fmt.Printf("stack: used %d/%d\n", stack.Used(), stack.Capacity())
		case "pop":
			n, err := parseBytes(parts)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !stack.Pop(n) {
				fmt.Println("pop: more bytes than allocated")
				continue
			}
			fmt.Printf("stack: used %d/%d\n", stack.Used(), stack.Capacity())
		case "chunk":
			b, err := pool.Alloc()
			if err != nil {
				fmt.Println("pool exhausted")
				continue
			}
			chunks = append(chunks, b)
			fmt.Printf("pool: %d free chunks\n", pool.FreeChunks())
		case "unchunk":
			if len(chunks) == 0 {
				fmt.Println("no chunk held")
				continue
			}
			b := chunks[len(chunks)-1]
			chunks = chunks[:len(chunks)-1]
			if !pool.Free(b) {
				fmt.Println("free rejected")
				continue
			}
			fmt.Printf("pool: %d free chunks\n", pool.FreeChunks())
		case "reset":
			arena.Reset()
			fmt.Println("arena reset")
		case "stats":
			fmt.Printf("arena: %d/%d (%.0f%%)\n", arena.Used(), arena.Capacity(), arena.Utilization()*100)
			fmt.Printf("pool: %d/%d chunks free\n", pool.FreeChunks(), pool.ChunkCount())
			fmt.Printf("stack: %d/%d\n", stack.Used(), stack.Capacity())
		default:
			fmt.Println("Unknown command. Try: alloc, push, pop, chunk, unchunk, reset, stats or exit.")
		}
	}
}

func parseBytes(parts []string) (uint64, error) {
	if len(parts) != 2 {
		return 0, fmt.Errorf("usage: %s <bytes>", parts[0])
	}
	n, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad byte count: %s", parts[1])
	}
	return n, nil
}
