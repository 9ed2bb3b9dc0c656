package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/vitrine/internal/engine/shader"
)

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat4 uLightSpace;

out vec3 vNormal;
out vec2 vTexCoord;
out vec3 vWorldPos;
out vec4 vLightSpacePos;

void main() {
    vec4 worldPos = uModel * vec4(aPosition, 1.0);
    vWorldPos = worldPos.xyz;
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    vLightSpacePos = uLightSpace * worldPos;
    gl_Position = uProjection * uView * worldPos;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec2 vTexCoord;
in vec3 vWorldPos;
in vec4 vLightSpacePos;

uniform sampler2D uTexture;
uniform sampler2DShadow uShadowMap;
uniform bool uShadows;

uniform vec3 uLightDir;
uniform vec3 uLightColor;
uniform float uLightIntensity;
uniform vec3 uSkyColor;
uniform vec3 uGroundColor;
uniform vec3 uDiffuse;
uniform float uOpacity;
uniform vec3 uCameraPos;
uniform vec3 uFogColor;
uniform float uFogDensity;

out vec4 FragColor;

float shadowFactor() {
    vec3 proj = vLightSpacePos.xyz / vLightSpacePos.w * 0.5 + 0.5;
    if (proj.z > 1.0) {
        return 1.0;
    }
    float bias = 0.002;
    return texture(uShadowMap, vec3(proj.xy, proj.z - bias));
}

void main() {
    vec3 normal = normalize(vNormal);
    vec4 tex = texture(uTexture, vTexCoord);

    vec3 ambient = mix(uGroundColor, uSkyColor, normal.y * 0.5 + 0.5);
    float direct = max(dot(normal, normalize(uLightDir)), 0.0);
    float lit = uShadows ? shadowFactor() : 1.0;
    vec3 color = (ambient + uLightColor * uLightIntensity * direct * lit) * uDiffuse * tex.rgb;

    float dist = length(vWorldPos - uCameraPos);
    float fog = 1.0 - exp(-uFogDensity * uFogDensity * dist * dist);
    color = mix(color, uFogColor, clamp(fog, 0.0, 1.0));

    FragColor = vec4(color, uOpacity * tex.a);
}
`

const flatVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;

void main() {
    vec4 worldPos = uModel * vec4(aPosition, 1.0);
    vWorldPos = worldPos.xyz;
    gl_Position = uProjection * uView * worldPos;
}
`

const flatFragmentShader = `
#version 410 core

in vec3 vWorldPos;

uniform vec3 uColor;
uniform vec3 uCameraPos;
uniform vec3 uFogColor;
uniform float uFogDensity;

out vec4 FragColor;

void main() {
    float dist = length(vWorldPos - uCameraPos);
    float fog = 1.0 - exp(-uFogDensity * uFogDensity * dist * dist);
    FragColor = vec4(mix(uColor, uFogColor, clamp(fog, 0.0, 1.0)), 1.0);
}
`

const depthVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uModel;
uniform mat4 uLightSpace;

void main() {
    gl_Position = uLightSpace * uModel * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `
#version 410 core

void main() {}
`

// meshProgram lights textured geometry with the sun and hemisphere
// lights, samples the shadow map, and applies distance fog.
type meshProgram struct {
	program uint32

	locModel      int32
	locView       int32
	locProjection int32
	locLightSpace int32

	locTexture   int32
	locShadowMap int32
	locShadows   int32

	locLightDir       int32
	locLightColor     int32
	locLightIntensity int32
	locSkyColor       int32
	locGroundColor    int32
	locDiffuse        int32
	locOpacity        int32
	locCameraPos      int32
	locFogColor       int32
	locFogDensity     int32
}

func (p *meshProgram) compile() error {
	prog, err := shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return err
	}
	p.program = prog
	p.locModel = shader.GetUniform(prog, "uModel")
	p.locView = shader.GetUniform(prog, "uView")
	p.locProjection = shader.GetUniform(prog, "uProjection")
	p.locLightSpace = shader.GetUniform(prog, "uLightSpace")
	p.locTexture = shader.GetUniform(prog, "uTexture")
	p.locShadowMap = shader.GetUniform(prog, "uShadowMap")
	p.locShadows = shader.GetUniform(prog, "uShadows")
	p.locLightDir = shader.GetUniform(prog, "uLightDir")
	p.locLightColor = shader.GetUniform(prog, "uLightColor")
	p.locLightIntensity = shader.GetUniform(prog, "uLightIntensity")
	p.locSkyColor = shader.GetUniform(prog, "uSkyColor")
	p.locGroundColor = shader.GetUniform(prog, "uGroundColor")
	p.locDiffuse = shader.GetUniform(prog, "uDiffuse")
	p.locOpacity = shader.GetUniform(prog, "uOpacity")
	p.locCameraPos = shader.GetUniform(prog, "uCameraPos")
	p.locFogColor = shader.GetUniform(prog, "uFogColor")
	p.locFogDensity = shader.GetUniform(prog, "uFogDensity")
	return nil
}

func (p *meshProgram) destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
}

// flatProgram draws unlit single-color geometry, used for the grid and
// the sun marker.
type flatProgram struct {
	program uint32

	locModel      int32
	locView       int32
	locProjection int32

	locColor      int32
	locCameraPos  int32
	locFogColor   int32
	locFogDensity int32
}

func (p *flatProgram) compile() error {
	prog, err := shader.CompileProgram(flatVertexShader, flatFragmentShader)
	if err != nil {
		return err
	}
	p.program = prog
	p.locModel = shader.GetUniform(prog, "uModel")
	p.locView = shader.GetUniform(prog, "uView")
	p.locProjection = shader.GetUniform(prog, "uProjection")
	p.locColor = shader.GetUniform(prog, "uColor")
	p.locCameraPos = shader.GetUniform(prog, "uCameraPos")
	p.locFogColor = shader.GetUniform(prog, "uFogColor")
	p.locFogDensity = shader.GetUniform(prog, "uFogDensity")
	return nil
}

func (p *flatProgram) destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
}

// depthProgram renders depth only, from the light's point of view.
type depthProgram struct {
	program uint32

	locModel      int32
	locLightSpace int32
}

func (p *depthProgram) compile() error {
	prog, err := shader.CompileProgram(depthVertexShader, depthFragmentShader)
	if err != nil {
		return err
	}
	p.program = prog
	p.locModel = shader.GetUniform(prog, "uModel")
	p.locLightSpace = shader.GetUniform(prog, "uLightSpace")
	return nil
}

func (p *depthProgram) destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
}
