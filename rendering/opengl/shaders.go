package opengl

// GLSL sources for the pipeline. None of them carry a #version line: the
// prologue (version + generated material constants + the material block)
// is prepended at build time, and CPU-side ids always match the defines.

// shaderPrelude opens every program source. The material block mirrors
// registry.Record field for field; both sides must agree on the 64-byte
// stride or properties silently scramble.
const shaderPrelude = "#version 430 core\n"

const materialBlock = `
struct Material {
    vec4  color;
    int   kind;        // 0=static 1=granular 2=liquid 3=gas
    float density;
    float viscosity;
    float burnChance;
    int   flammable;
    int   glow;
    int   maxLife;
    int   gemstone;
    float lightRadius;
    float lightIntensity;
    float ior;
    int   pad;
};

layout(std430, binding = 2) readonly buffer Materials {
    Material materials[];
};
`

// Cell state channels: r = material id, g = state/life, b = velocity,
// a = flags.
const simulationSrc = materialBlock + `
layout(local_size_x = 16, local_size_y = 16) in;

layout(rgba8ui, binding = 0) uniform readonly  uimage2D stateIn;
layout(rgba8ui, binding = 1) uniform writeonly uimage2D stateOut;

uniform vec2  worldSize;
uniform float time;
uniform uint  frameCount;
uniform float waterViscosity;
uniform float lavaViscosity;

uint hash(uvec3 v) {
    v = v * 1664525u + 1013904223u;
    v.x += v.y * v.z; v.y += v.z * v.x; v.z += v.x * v.y;
    v ^= v >> 16u;
    v.x += v.y * v.z;
    return v.x;
}

float rnd(ivec2 p) {
    return float(hash(uvec3(uint(p.x), uint(p.y), frameCount))) / 4294967295.0;
}

bool inWorld(ivec2 p) {
    return p.x >= 0 && p.y >= 0 && p.x < int(worldSize.x) && p.y < int(worldSize.y);
}

uvec4 cellAt(ivec2 p) {
    if (!inWorld(p)) return uvec4(0u);
    return imageLoad(stateIn, p);
}

bool denserThan(uint a, uint b) {
    return materials[a].density > materials[b].density;
}

void main() {
    ivec2 pos = ivec2(gl_GlobalInvocationID.xy);
    if (!inWorld(pos)) return;

    uvec4 cell = cellAt(pos);
    uint  id = cell.r;

    // Lifetime countdown: state byte holds remaining life when maxLife > 0.
    if (id != 0u && materials[id].maxLife > 0) {
        if (cell.g == 0u) {
            cell = uvec4(0u);
            id = 0u;
        } else {
            cell.g -= 1u;
        }
    }

    if (id == 0u) {
        // Empty cell: adopt whatever falls or rises into it.
        uvec4 above = cellAt(pos + ivec2(0, 1));
        if (above.r != 0u && materials[above.r].kind != 0 && materials[above.r].kind != 3) {
            imageStore(stateOut, pos, above);
            return;
        }
        uvec4 below = cellAt(pos + ivec2(0, -1));
        if (below.r != 0u && materials[below.r].kind == 3) {
            imageStore(stateOut, pos, below);
            return;
        }
        imageStore(stateOut, pos, uvec4(0u));
        return;
    }

    int kind = materials[id].kind;

    // Granular and liquid cells vacate when the cell below accepts them.
    if (kind == 1 || kind == 2) {
        uvec4 below = cellAt(pos + ivec2(0, -1));
        if (pos.y > 0 && (below.r == 0u || denserThan(id, below.r))) {
            imageStore(stateOut, pos, below);
            return;
        }
        // Liquids spread sideways, throttled by viscosity.
        if (kind == 2) {
            float visc = materials[id].viscosity;
            if (visc <= 0.0) {
                // Untuned liquids fall back to the live UI sliders.
                visc = materials[id].glow == 1 ? lavaViscosity : waterViscosity;
            }
            int dir = rnd(pos) < 0.5 ? -1 : 1;
            uvec4 side = cellAt(pos + ivec2(dir, 0));
            if (side.r == 0u && rnd(pos + ivec2(7, 3)) > visc) {
                imageStore(stateOut, pos, side);
                return;
            }
        }
    }

    // Gases drift upward.
    if (kind == 3) {
        uvec4 above = cellAt(pos + ivec2(0, 1));
        if (pos.y < int(worldSize.y) - 1 && above.r == 0u) {
            imageStore(stateOut, pos, above);
            return;
        }
    }

    // Ignition: flammable cells next to a glowing one may start burning.
    if (materials[id].flammable == 1) {
        for (int i = 0; i < 4; i++) {
            ivec2 n = pos + ivec2(i == 0 ? 1 : i == 1 ? -1 : 0, i == 2 ? 1 : i == 3 ? -1 : 0);
            uvec4 nb = cellAt(n);
            if (nb.r != 0u && materials[nb.r].glow == 1 && rnd(pos + n) < materials[id].burnChance) {
                imageStore(stateOut, pos, uvec4(nb.r, uint(materials[nb.r].maxLife), cell.b, cell.a));
                return;
            }
        }
    }

    imageStore(stateOut, pos, cell);
}
`

// extractSrc turns cell state into a color buffer and a normal/height/
// specular buffer for the lighting passes.
const extractSrc = materialBlock + `
layout(local_size_x = 16, local_size_y = 16) in;

layout(rgba8ui,  binding = 0) uniform readonly  uimage2D state;
layout(rgba8,    binding = 1) uniform writeonly image2D  colorOut;
layout(rgba16f,  binding = 2) uniform writeonly image2D  normalOut;

uniform vec4  backgroundColor;
uniform float time;

float occupancy(ivec2 p) {
    ivec2 sz = imageSize(state);
    if (p.x < 0 || p.y < 0 || p.x >= sz.x || p.y >= sz.y) return 0.0;
    return imageLoad(state, p).r != 0u ? 1.0 : 0.0;
}

void main() {
    ivec2 pos = ivec2(gl_GlobalInvocationID.xy);
    ivec2 sz = imageSize(state);
    if (pos.x >= sz.x || pos.y >= sz.y) return;

    uint id = imageLoad(state, pos).r;

    vec4 color = backgroundColor;
    if (id != 0u && id < MAX_MATERIALS) {
        color = materials[id].color;
        if (materials[id].glow == 1) {
            color.rgb *= 1.0 + 0.15 * sin(time * 9.0 + float(pos.x + pos.y));
        }
    }
    imageStore(colorOut, pos, color);

    // Screen-space normal from the occupancy gradient; alpha carries a
    // specular weight (gemstones reflect hardest).
    float dx = occupancy(pos + ivec2(1, 0)) - occupancy(pos - ivec2(1, 0));
    float dy = occupancy(pos + ivec2(0, 1)) - occupancy(pos - ivec2(0, 1));
    vec3 normal = normalize(vec3(-dx, -dy, 1.0));
    float spec = 0.0;
    if (id != 0u && id < MAX_MATERIALS) {
        spec = materials[id].gemstone == 1 ? 1.0 : 0.25;
    }
    imageStore(normalOut, pos, vec4(normal * 0.5 + 0.5, spec));
}
`

// lightSrc runs once per bounce: reads the previous bounce's lightmap and
// writes the next, seeding from glowing materials on bounce 0.
const lightSrc = materialBlock + `
layout(local_size_x = 16, local_size_y = 16) in;

layout(rgba8ui, binding = 0) uniform readonly  uimage2D state;
layout(rgba16f, binding = 1) uniform readonly  image2D  normals;
layout(rgba16f, binding = 2) uniform readonly  image2D  lightIn;
layout(rgba16f, binding = 3) uniform writeonly image2D  lightOut;

uniform int   bounceIndex;
uniform float ambientLight;
uniform float glowIntensity;
uniform float glowRadius;

void main() {
    ivec2 pos = ivec2(gl_GlobalInvocationID.xy);
    ivec2 sz = imageSize(state);
    if (pos.x >= sz.x || pos.y >= sz.y) return;

    uint id = imageLoad(state, pos).r;

    vec3 emitted = vec3(0.0);
    if (id != 0u && id < MAX_MATERIALS && materials[id].glow == 1) {
        float radius = max(materials[id].lightRadius, glowRadius);
        emitted = materials[id].color.rgb
                * materials[id].lightIntensity * glowIntensity
                * (radius / 16.0);
    }

    // Gather the previous bounce from the neighborhood; solid non-glowing
    // cells occlude.
    vec3 gathered = vec3(0.0);
    float weight = 0.0;
    for (int oy = -1; oy <= 1; oy++) {
        for (int ox = -1; ox <= 1; ox++) {
            ivec2 n = pos + ivec2(ox, oy);
            if (n.x < 0 || n.y < 0 || n.x >= sz.x || n.y >= sz.y) continue;
            uint nid = imageLoad(state, n).r;
            float pass = 1.0;
            if (nid != 0u && materials[nid].kind == 0 && materials[nid].glow == 0) {
                pass = materials[nid].gemstone == 1 ? 1.0 / materials[nid].ior : 0.15;
            }
            gathered += imageLoad(lightIn, n).rgb * pass;
            weight += 1.0;
        }
    }
    if (weight > 0.0) gathered /= weight;

    // Bounce 0 starts from emission over ambient; later bounces decay.
    vec3 carried = bounceIndex == 0 ? vec3(ambientLight) : gathered * 0.85;
    imageStore(lightOut, pos, vec4(carried + emitted, 1.0));
}
`

// compositeSrc folds color, normals and the final lightmap into the
// display buffer.
const compositeSrc = materialBlock + `
layout(local_size_x = 16, local_size_y = 16) in;

layout(rgba8ui, binding = 0) uniform readonly  uimage2D state;
layout(rgba8,   binding = 1) uniform readonly  image2D  colorIn;
layout(rgba16f, binding = 2) uniform readonly  image2D  normals;
layout(rgba16f, binding = 3) uniform readonly  image2D  lightFinal;
layout(rgba8,   binding = 4) uniform writeonly image2D  display;

uniform float ambientLight;
uniform float specularStrength;
uniform vec4  backgroundColor;

void main() {
    ivec2 pos = ivec2(gl_GlobalInvocationID.xy);
    ivec2 sz = imageSize(display);
    if (pos.x >= sz.x || pos.y >= sz.y) return;

    uint id = imageLoad(state, pos).r;
    if (id == 0u) {
        imageStore(display, pos, backgroundColor);
        return;
    }

    vec4 base = imageLoad(colorIn, pos);
    vec4 nrm = imageLoad(normals, pos);
    vec3 light = max(imageLoad(lightFinal, pos).rgb, vec3(ambientLight));

    vec3 n = nrm.xyz * 2.0 - 1.0;
    vec3 toLight = normalize(vec3(0.3, 0.8, 0.6));
    float spec = pow(max(dot(n, toLight), 0.0), 16.0) * nrm.a * specularStrength;

    vec3 lit = base.rgb * light + vec3(spec);
    imageStore(display, pos, vec4(lit, base.a));
}
`

// Fullscreen blit pair. The quad carries interleaved pos/uv.
const quadVertSrc = `
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;

out vec2 uv;

void main() {
    uv = aUV;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const quadFragSrc = `
in vec2 uv;
out vec4 fragColor;

uniform sampler2D displayTex;

void main() {
    fragColor = texture(displayTex, uv);
}
`
