/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package presets

// fileSchema is the JSON Schema (draft-04) every preset file must satisfy
// before any value is looked at. Keeping it embedded means validation works
// the same from the CLI and from tests without a docs path lookup.
const fileSchema = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "title": "Caption layout presets",
  "type": "object",
  "required": ["presets"],
  "additionalProperties": false,
  "properties": {
    "presets": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "base": {"type": "string", "minLength": 1},
          "marginSides": {"type": "number", "minimum": 0},
          "marginTop": {"type": "number", "minimum": 0},
          "outerPadding": {"type": "number", "minimum": 0},
          "lineSpacing": {"type": "number", "minimum": 0},
          "minLineHeight": {"type": "number", "minimum": 0},
          "targetImageWidth": {"type": "number", "minimum": 0, "exclusiveMinimum": true},
          "squareAdjust": {"type": "boolean"}
        }
      }
    }
  }
}`
