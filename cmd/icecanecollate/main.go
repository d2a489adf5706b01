/**
 * Copyright 2020 The IcecaneDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dr0pdb/icecanecollate/pkg/collate"
	"github.com/dr0pdb/icecanecollate/pkg/common"
	"github.com/dr0pdb/icecanecollate/pkg/storage"
	log "github.com/sirupsen/logrus"
)

var (
	configFilePathFlag = flag.String("config", "", "path of a yaml config file")
	collationFlag      = flag.String("collation", "", "collation to sort with: JSON, JSON_RAW, JSON_ASCII or REVID")
	localeFlag         = flag.String("locale", "", "locale of the unicode collation")
	logLevelFlag       = flag.String("loglevel", "", "the level of log")
	uniqueFlag         = flag.Bool("unique", false, "print keys that collate equal only once")
)

// main reads one key per line from stdin and prints them in collation order.
func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	conf := common.NewDefaultCollatorConfig()
	if *configFilePathFlag != "" {
		conf.LoadFromFile(*configFilePathFlag)
	}
	if *collationFlag != "" {
		conf.Collation = *collationFlag
	}
	if *localeFlag != "" {
		conf.Locale = *localeFlag
	}
	if *logLevelFlag != "" {
		conf.LogLevel = *logLevelFlag
	}

	if err := conf.Validate(); err != nil {
		log.Fatalf("%v", err)
	}
	level, _ := log.ParseLevel(conf.LogLevel)
	log.SetLevel(level)

	if err := run(conf, *uniqueFlag, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

// run sorts the lines of in with the configured collation and writes them to out.
func run(conf *common.CollatorConfig, unique bool, in io.Reader, out io.Writer) error {
	log.WithFields(log.Fields{"collation": conf.Collation, "locale": conf.Locale}).Info("icecanecollatemain::main::run; starting")

	cmp, err := collate.NewComparatorFromConfig(conf)
	if err != nil {
		return err
	}

	s, err := storage.NewStorageWithCustomComparator("stdin", cmp, &storage.Options{ComparatorName: conf.Collation})
	if err != nil {
		return err
	}
	if err = s.Open(); err != nil {
		return err
	}
	defer s.Close()

	// lines that collate equal are kept apart, in input order, unless unique is set.
	var dups [][]string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		idx := len(dups)
		if v, err := s.Get([]byte(line), nil); err == nil {
			if unique {
				continue
			}
			if idx, err = strconv.Atoi(string(v)); err != nil {
				return err
			}
			dups[idx] = append(dups[idx], line)
			continue
		} else if _, ok := err.(common.NotFoundError); !ok {
			return err
		}

		dups = append(dups, []string{line})
		if err = s.Set([]byte(line), []byte(strconv.Itoa(idx))); err != nil {
			return err
		}
	}
	if err = scanner.Err(); err != nil {
		return err
	}

	itr, err := s.Scan(nil, nil)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for ; itr.Valid(); itr.Next() {
		idx, err := strconv.Atoi(string(itr.Value()))
		if err != nil {
			return err
		}
		for _, line := range dups[idx] {
			fmt.Fprintln(w, line)
		}
	}

	log.WithFields(log.Fields{"keys": len(dups)}).Info("icecanecollatemain::main::run; done")
	return w.Flush()
}
