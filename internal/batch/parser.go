/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package batch parses plain-text job files and runs the render pipeline
// over them. One line is one render.
package batch

import (
	"bufio"
	"strings"
)

// Parse parses a job file into jobs.
// Supported syntax (minimal):
//
//	image path | caption text [| preset [| format [| output path]]]
//
// - Lines starting with "#" or ";" are comments.
// - Blank lines are separators.
// - "@preset NAME" and "@format NAME" set defaults for subsequent lines.
//
// Malformed lines are reported with their line number; well-formed lines
// around them still parse so one typo does not sink a whole batch.
func Parse(input string) ([]Job, []Error) {
	var jobs []Job
	var errs []Error

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	defPreset := ""
	defFormat := ""
	for scanner.Scan() {
		lineNo++
		trim := strings.TrimSpace(scanner.Text())
		if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
			continue
		}

		// Default directives
		if strings.HasPrefix(trim, "@") {
			fields := strings.Fields(trim)
			switch fields[0] {
			case "@preset":
				if len(fields) != 2 {
					errs = append(errs, Error{Line: lineNo, Message: "@preset wants exactly one name"})
					continue
				}
				defPreset = fields[1]
			case "@format":
				if len(fields) != 2 {
					errs = append(errs, Error{Line: lineNo, Message: "@format wants exactly one name"})
					continue
				}
				defFormat = fields[1]
			default:
				errs = append(errs, Error{Line: lineNo, Message: "unknown directive " + fields[0]})
			}
			continue
		}

		parts := strings.Split(trim, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 {
			errs = append(errs, Error{Line: lineNo, Message: "want at least image | caption"})
			continue
		}
		if len(parts) > 5 {
			errs = append(errs, Error{Line: lineNo, Message: "too many fields"})
			continue
		}
		job := Job{Image: parts[0], Caption: parts[1], Preset: defPreset, Format: defFormat, LineNo: lineNo}
		if job.Image == "" {
			errs = append(errs, Error{Line: lineNo, Message: "image path is empty"})
			continue
		}
		if job.Caption == "" {
			errs = append(errs, Error{Line: lineNo, Message: "caption is empty"})
			continue
		}
		if len(parts) > 2 && parts[2] != "" {
			job.Preset = parts[2]
		}
		if len(parts) > 3 && parts[3] != "" {
			job.Format = strings.ToLower(parts[3])
		}
		if len(parts) > 4 && parts[4] != "" {
			job.Output = parts[4]
		}
		jobs = append(jobs, job)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Message: err.Error()})
	}
	return jobs, errs
}
