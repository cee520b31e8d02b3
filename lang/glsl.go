// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lang

// GLSL is the OpenGL ES Shading Language 3.00 dialect, as used by WebGL 2.
// The tables follow the GLSL ES 3.00 specification plus the WebGL
// restrictions, the #include extension and the WebGL multi-draw and
// multiview built-ins.
var GLSL = New("GLSL", Tables{
	Keywords:    glslKeywords,
	Directives:  glslDirectives,
	Types:       glslTypes,
	Qualifiers:  glslQualifiers,
	Externals:   []string{"uniform", "in", "out", "attribute", "varying", "buffer"},
	Precisions:  []string{"lowp", "mediump", "highp"},
	EntryPoints: []string{"main"},
	Symbols:     glslSymbols,
})

var glslTypes = []string{
	"void", "bool", "int", "uint", "float",
	"vec2", "vec3", "vec4",
	"ivec2", "ivec3", "ivec4",
	"uvec2", "uvec3", "uvec4",
	"bvec2", "bvec3", "bvec4",
	"mat2", "mat3", "mat4",
	"mat2x2", "mat2x3", "mat2x4",
	"mat3x2", "mat3x3", "mat3x4",
	"mat4x2", "mat4x3", "mat4x4",
	"sampler2D", "sampler3D", "samplerCube",
	"sampler2DShadow", "samplerCubeShadow",
	"sampler2DArray", "sampler2DArrayShadow",
	"isampler2D", "isampler3D", "isamplerCube", "isampler2DArray",
	"usampler2D", "usampler3D", "usamplerCube", "usampler2DArray",
}

var glslQualifiers = []string{
	"const", "uniform", "buffer", "shared",
	"attribute", "varying",
	"in", "out", "inout",
	"centroid", "flat", "smooth", "noperspective",
	"invariant", "precise",
	"lowp", "mediump", "highp",
	"patch", "sample",
	"coherent", "volatile", "restrict", "readonly", "writeonly",
}

var glslDirectives = []string{
	"define", "undef",
	"if", "ifdef", "ifndef", "else", "elif", "endif",
	"error", "pragma", "extension", "version", "line",
	"include",
}

var glslKeywords = []string{
	// Keywords
	"layout", "break", "continue", "do", "for", "while", "switch", "case",
	"default", "if", "else", "discard", "return", "precision", "struct",

	// Reserved for future use
	"resource", "atomic_uint", "subroutine", "common", "partition", "active",
	"asm", "class", "union", "enum", "typedef", "template", "this", "goto",
	"inline", "noinline", "public", "static", "extern", "external",
	"interface", "long", "short", "double", "half", "fixed", "unsigned",
	"superp", "input", "output",
	"hvec2", "hvec3", "hvec4", "dvec2", "dvec3", "dvec4", "fvec2", "fvec3", "fvec4",
	"sampler3DRect", "filter",
	"image1D", "image2D", "image3D", "imageCube",
	"iimage1D", "iimage2D", "iimage3D", "iimageCube",
	"uimage1D", "uimage2D", "uimage3D", "uimageCube",
	"image1DArray", "image2DArray", "iimage1DArray", "iimage2DArray",
	"uimage1DArray", "uimage2DArray",
	"imageBuffer", "iimageBuffer", "uimageBuffer",
	"sampler1D", "sampler1DShadow", "sampler1DArray", "sampler1DArrayShadow",
	"isampler1D", "isampler1DArray", "usampler1D", "usampler1DArray",
	"sampler2DRect", "sampler2DRectShadow", "isampler2DRect", "usampler2DRect",
	"samplerBuffer", "isamplerBuffer", "usamplerBuffer",
	"sampler2DMS", "isampler2DMS", "usampler2DMS",
	"sampler2DMSArray", "isampler2DMSArray", "usampler2DMSArray",
	"sizeof", "cast", "namespace", "using",

	// Preprocessor
	"defined", "__LINE__", "__FILE__", "__VERSION__", "GL_ES",

	// Special variables
	"gl_VertexID", "gl_InstanceID", "gl_Position", "gl_PointSize",
	"gl_FragCoord", "gl_FrontFacing", "gl_FragDepth", "gl_PointCoord",

	// Built-in constants
	"gl_MaxVertexAttribs", "gl_MaxVertexUniformVectors", "gl_MaxVertexOutputVectors",
	"gl_MaxFragmentInputVectors", "gl_MaxVertexTextureImageUnits",
	"gl_MaxCombinedTextureImageUnits", "gl_MaxTextureImageUnits",
	"gl_MaxFragmentUniformVectors", "gl_MaxDrawBuffers",
	"gl_MinProgramTexelOffset", "gl_MaxProgramTexelOffset",

	// Built-in uniform state
	"gl_DepthRangeParameters", "gl_DepthRange",

	// Angle and trigonometry functions
	"radians", "degrees", "sin", "cos", "tan", "asin", "acos", "atan",
	"sinh", "cosh", "tanh", "asinh", "acosh", "atanh",

	// Exponential functions
	"pow", "exp", "log", "exp2", "log2", "sqrt", "inversesqrt",

	// Common functions
	"abs", "sign", "floor", "trunc", "round", "roundEven", "ceil", "fract",
	"mod", "modf", "min", "max", "clamp", "mix", "step", "smoothstep",
	"isnan", "isinf", "floatBitsToInt", "floatBitsToUint",
	"intBitsToFloat", "uintBitsToFloat",

	// Floating-point pack and unpack functions
	"packSnorm2x16", "unpackSnorm2x16", "packUnorm2x16", "unpackUnorm2x16",
	"packHalf2x16", "unpackHalf2x16",

	// Geometric functions
	"length", "distance", "dot", "cross", "normalize", "faceforward",
	"reflect", "refract", "matrixCompMult", "outerProduct", "transpose",
	"determinant", "inverse",

	// Vector relational functions
	"lessThan", "lessThanEqual", "greaterThan", "greaterThanEqual",
	"equal", "notEqual", "any", "all", "not",

	// Texture lookup functions
	"textureSize", "texture", "textureProj", "textureLod", "textureOffset",
	"texelFetch", "texelFetchOffset", "textureProjOffset", "textureLodOffset",
	"textureProjLod", "textureProjLodOffset", "textureGrad", "textureGradOffset",
	"textureProjGrad", "textureProjGradOffset",

	// Fragment processing functions
	"dFdx", "dFdy", "fwidth",

	// WEBGL_multi_draw
	"gl_DrawID",

	// OVR_multiview2
	"gl_ViewID_OVR", "GL_OVR_multiview2",
}

var glslSymbols = []string{
	// Preprocessor and line continuation
	"#", "\\",

	// Comment openers, so re-emission never fuses '/' '/' or '/' '*'
	"//", "/*",

	// Punctuation
	".", ",", ";", "{", "}", "(", ")", "[", "]", "?", ":",

	// Operators
	"<", ">", "<=", ">=", "&&", "||", "^^",
	"~", "=", "!", "+", "-", "*", "/", "&", "|", "^", "%", "<<", ">>",
	"++", "--", "==", "!=",
	"+=", "-=", "*=", "/=", "&=", "|=", "^=", "%=", "<<=", ">>=",
}
