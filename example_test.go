// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shaderkit_test

import (
	"fmt"
	"log"

	"github.com/gogpu/shaderkit"
	"github.com/gogpu/shaderkit/mangler"
)

func ExampleMinify() {
	opts := mangler.DefaultOptions()
	opts.Mangle = true
	opts.MangleMap = map[string]string{}

	fmt.Println(shaderkit.Minify("float foo, bar; // state\nfoo = bar + 1.0;", opts))
	fmt.Println(opts.MangleMap["foo"], opts.MangleMap["bar"])
	// Output:
	// float a,b;a=b+1.0;
	// a b
}

func ExampleFormat() {
	out, err := shaderkit.Format(`
void main() {
    gl_FragColor = vec4(1.0, 0.0, 0.0, 1.0);
}
`, shaderkit.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	// Output:
	// void main(){gl_FragColor=vec4(1.0,0.0,0.0,1.0);}
}

func ExampleParse() {
	_, err := shaderkit.Parse("void main() { float x = 1.0 }")
	fmt.Println(err)
	// Output:
	// parse error: line 1, column 29: expected ";", got "}"
}
