// Package main implements tablet-cli, a command line client for tablets.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/pkg/client"
	"github.com/tabletkv/tabletkv/pkg/types"
)

func usage() {
	fmt.Fprintf(os.Stderr, "tablet-cli - command line client for tabletkv tablets\n\n")
	fmt.Fprintf(os.Stderr, "Usage: tablet-cli [options] <command> [args]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  create <name> <tid> <pid> [ttl_minutes] [seg_cnt]\n")
	fmt.Fprintf(os.Stderr, "  drop <tid> <pid>\n")
	fmt.Fprintf(os.Stderr, "  put <tid> <pid> <key> <ts> <value>\n")
	fmt.Fprintf(os.Stderr, "  get <tid> <pid> <key> [ts]\n")
	fmt.Fprintf(os.Stderr, "  scan <tid> <pid> <key> <start_ts> <end_ts> [limit]\n")
	fmt.Fprintf(os.Stderr, "  status <tid> <pid>\n")
	fmt.Fprintf(os.Stderr, "  snapshot <tid> <pid>\n")
	fmt.Fprintf(os.Stderr, "  load <tid> <pid>\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	var (
		configFile string
		endpoints  string
		timeout    time.Duration
	)
	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&endpoints, "endpoints", "", "Comma separated tablet addresses")
	flag.DurationVar(&timeout, "timeout", 0, "Per-call timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fatalf("failed to load .env: %v", err)
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(configFile); err != nil {
			fatalf("%v", err)
		}
	}
	config.LoadFromEnv(cfg)
	if endpoints != "" {
		cfg.Client.Endpoints = strings.Split(endpoints, ",")
	}
	if timeout > 0 {
		cfg.Client.Timeout = timeout
	}

	c, err := client.New(
		client.WithEndpoints(cfg.Client.Endpoints...),
		client.WithTimeout(cfg.Client.Timeout),
		client.WithResolverCacheTTL(cfg.Client.ResolverCacheTTL),
	)
	if err != nil {
		fatalf("%v", err)
	}
	defer c.Close()

	if err := run(context.Background(), c, flag.Arg(0), flag.Args()[1:]); err != nil {
		c.Close()
		fatalf("%s: %v", flag.Arg(0), err)
	}
}

// run executes one command and prints its result to stdout.
func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	switch cmd {
	case "create":
		if len(args) < 3 {
			return errors.New("usage: create <name> <tid> <pid> [ttl_minutes] [seg_cnt]")
		}
		spec := types.TableSpec{Name: args[0], SegCnt: types.DefaultSegCnt}
		var err error
		if spec.TID, spec.PID, err = tableKey(args[1:3]); err != nil {
			return err
		}
		if len(args) > 3 {
			if spec.TTL, err = strconv.ParseInt(args[3], 10, 64); err != nil {
				return fmt.Errorf("invalid ttl: %w", err)
			}
		}
		if len(args) > 4 {
			n, err := strconv.ParseUint(args[4], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid seg_cnt: %w", err)
			}
			spec.SegCnt = uint32(n)
		}
		return printOK(c.CreateTable(ctx, spec))

	case "drop", "snapshot", "load":
		if len(args) != 2 {
			return fmt.Errorf("usage: %s <tid> <pid>", cmd)
		}
		tid, pid, err := tableKey(args)
		if err != nil {
			return err
		}
		switch cmd {
		case "drop":
			return printOK(c.DropTable(ctx, tid, pid))
		case "snapshot":
			return printOK(c.MakeSnapshot(ctx, tid, pid))
		default:
			return printOK(c.LoadTable(ctx, tid, pid))
		}

	case "put":
		if len(args) != 5 {
			return errors.New("usage: put <tid> <pid> <key> <ts> <value>")
		}
		tid, pid, err := tableKey(args[:2])
		if err != nil {
			return err
		}
		ts, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ts: %w", err)
		}
		return printOK(c.Put(ctx, tid, pid, args[2], ts, []byte(args[4])))

	case "get":
		if len(args) != 3 && len(args) != 4 {
			return errors.New("usage: get <tid> <pid> <key> [ts]")
		}
		tid, pid, err := tableKey(args[:2])
		if err != nil {
			return err
		}
		var (
			value []byte
			found bool
		)
		if len(args) == 4 {
			ts, perr := strconv.ParseInt(args[3], 10, 64)
			if perr != nil {
				return fmt.Errorf("invalid ts: %w", perr)
			}
			value, found, err = c.GetAt(ctx, tid, pid, args[2], ts)
		} else {
			value, found, err = c.Get(ctx, tid, pid, args[2])
		}
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("(not found)")
			return nil
		}
		fmt.Println(string(value))
		return nil

	case "scan":
		if len(args) != 5 && len(args) != 6 {
			return errors.New("usage: scan <tid> <pid> <key> <start_ts> <end_ts> [limit]")
		}
		tid, pid, err := tableKey(args[:2])
		if err != nil {
			return err
		}
		start, err1 := strconv.ParseInt(args[3], 10, 64)
		end, err2 := strconv.ParseInt(args[4], 10, 64)
		if err1 != nil || err2 != nil {
			return errors.New("start_ts and end_ts must be integers")
		}
		var opts []client.ScanOption
		if len(args) == 6 {
			n, err := strconv.ParseUint(args[5], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid limit: %w", err)
			}
			opts = append(opts, client.WithLimit(uint32(n)))
		}
		it, err := c.Scan(ctx, tid, pid, args[2], start, end, opts...)
		if err != nil {
			return err
		}
		for ; it.Valid(); it.Next() {
			fmt.Printf("%d\t%s\n", it.Key(), it.Value())
		}
		fmt.Printf("(%d entries)\n", it.Count())
		return nil

	case "status":
		if len(args) != 2 {
			return errors.New("usage: status <tid> <pid>")
		}
		tid, pid, err := tableKey(args)
		if err != nil {
			return err
		}
		st, err := c.TableStatus(ctx, tid, pid)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func tableKey(args []string) (uint32, uint32, error) {
	tid, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tid: %w", err)
	}
	pid, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pid: %w", err)
	}
	return uint32(tid), uint32(pid), nil
}

func printOK(ok bool, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tablet-cli: "+format+"\n", args...)
	os.Exit(1)
}
