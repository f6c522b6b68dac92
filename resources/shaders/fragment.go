//go:build ignore
// +build ignore

//kage:unit pixels

package main

var Resolution vec2
var Time float
var Mouse vec2

// Signed distance to the scene: a bobbing sphere resting over a floor plane.
func scene(p vec3) float {
	sphere := length(p-vec3(0, 0.25*sin(Time), 0)) - 1
	ground := p.y + 1.25
	return min(sphere, ground)
}

func normalAt(p vec3) vec3 {
	e := 0.001
	return normalize(vec3(
		scene(p+vec3(e, 0, 0))-scene(p-vec3(e, 0, 0)),
		scene(p+vec3(0, e, 0))-scene(p-vec3(0, e, 0)),
		scene(p+vec3(0, 0, e))-scene(p-vec3(0, 0, e)),
	))
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	// ebiten hands us top left origin positions, the uniforms are bottom left
	p := vec2(dstPos.x, Resolution.y-dstPos.y)
	uv := (2*p - Resolution) / Resolution.y

	ro := vec3(0, 0, -4)
	rd := normalize(vec3(uv, 1.5))

	t := 0.0
	hit := false
	for i := 0; i < 128; i++ {
		d := scene(ro + rd*t)
		if d < 0.001 {
			hit = true
			break
		}
		t += d
		if t > 40 {
			break
		}
	}
	if !hit {
		return vec4(0.05, 0.05, 0.1+0.1*uv.y, 1)
	}

	// the light follows the cursor
	m := (2*Mouse - Resolution) / Resolution.y
	light := normalize(vec3(m.x*3, 2+m.y*3, -3))
	n := normalAt(ro + rd*t)
	diffuse := max(dot(n, light), 0)
	col := vec3(0.9, 0.6, 0.3)*diffuse + vec3(0.05, 0.05, 0.1)
	return vec4(pow(col, vec3(1/2.2)), 1)
}
