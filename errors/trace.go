/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package errors

import (
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const pathSeparator = "/"

func convPathFromLocal(str string) string {
	return strings.ReplaceAll(str, string(filepath.Separator), pathSeparator)
}

// getFrame returns the call site of the first frame outside this package.
func getFrame() runtime.Frame {
	pc := make([]uintptr, 20)
	n := runtime.Callers(3, pc)

	if n <= 0 {
		return runtime.Frame{}
	}

	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()

		if strings.Contains(frame.Function, "sabouaram/kyco/errors") {
			if !more {
				return frame
			}
			continue
		}

		return frame
	}
}

func filterPath(pathname string) string {
	pathname = convPathFromLocal(pathname)

	if i := strings.LastIndex(pathname, pathSeparator+"pkg"+pathSeparator+"mod"+pathSeparator); i != -1 {
		pathname = pathname[i+len(pathSeparator+"pkg"+pathSeparator+"mod"+pathSeparator):]
	}

	return strings.Trim(path.Clean(pathname), pathSeparator)
}
