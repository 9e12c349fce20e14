// This file is part of Lockstep.
//
// Lockstep is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lockstep is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lockstep.  If not, see <https://www.gnu.org/licenses/>.

package eval

// IsAssignment returns true if the source contains an assignment. That is,
// an equals sign that is not part of a comparison operator and is not inside
// a string literal or a comment.
func IsAssignment(src string) bool {
	var quote byte
	var depth int

	for i := 0; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case '-':
			if i+1 < len(src) && src[i+1] == '-' {
				// remainder of line is a comment
				return false
			}
		case '=':
			if i+1 < len(src) && src[i+1] == '=' {
				i++
				continue
			}
			if i > 0 {
				switch src[i-1] {
				case '~', '<', '>', '=':
					continue
				}
			}

			// an equals sign inside brackets is a table constructor field
			// and not an assignment
			if depth == 0 {
				return true
			}
		}
	}

	return false
}
