package device

// WGSL reduction kernels. String constants instead of embed for
// simplicity. Each kernel folds one workgroup of inputs through shared
// memory and writes one partial per workgroup; the host folds the
// partials.

// workgroupSize is the number of threads per workgroup. Must match the
// @workgroup_size attribute and the scratch array length in the kernels.
const workgroupSize = 256

// sumShader computes per-workgroup partial sums.
const sumShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> partials: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> scratch: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>,
        @builtin(local_invocation_id) local_id: vec3<u32>,
        @builtin(workgroup_id) group_id: vec3<u32>) {
    var v: f32 = 0.0;
    if (global_id.x < params.size) {
        v = input[global_id.x];
    }
    scratch[local_id.x] = v;
    workgroupBarrier();

    var stride: u32 = 128u;
    loop {
        if (local_id.x < stride) {
            scratch[local_id.x] = scratch[local_id.x] + scratch[local_id.x + stride];
        }
        workgroupBarrier();
        if (stride == 1u) { break; }
        stride = stride / 2u;
    }

    if (local_id.x == 0u) {
        partials[group_id.x] = scratch[0u];
    }
}
`

// minShader computes per-workgroup partial minima. Out-of-range lanes
// contribute +FLT_MAX.
const minShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> partials: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> scratch: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>,
        @builtin(local_invocation_id) local_id: vec3<u32>,
        @builtin(workgroup_id) group_id: vec3<u32>) {
    var v: f32 = 3.4028235e38;
    if (global_id.x < params.size) {
        v = input[global_id.x];
    }
    scratch[local_id.x] = v;
    workgroupBarrier();

    var stride: u32 = 128u;
    loop {
        if (local_id.x < stride) {
            scratch[local_id.x] = min(scratch[local_id.x], scratch[local_id.x + stride]);
        }
        workgroupBarrier();
        if (stride == 1u) { break; }
        stride = stride / 2u;
    }

    if (local_id.x == 0u) {
        partials[group_id.x] = scratch[0u];
    }
}
`

// maxShader computes per-workgroup partial maxima. Out-of-range lanes
// contribute -FLT_MAX.
const maxShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> partials: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> scratch: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>,
        @builtin(local_invocation_id) local_id: vec3<u32>,
        @builtin(workgroup_id) group_id: vec3<u32>) {
    var v: f32 = -3.4028235e38;
    if (global_id.x < params.size) {
        v = input[global_id.x];
    }
    scratch[local_id.x] = v;
    workgroupBarrier();

    var stride: u32 = 128u;
    loop {
        if (local_id.x < stride) {
            scratch[local_id.x] = max(scratch[local_id.x], scratch[local_id.x + stride]);
        }
        workgroupBarrier();
        if (stride == 1u) { break; }
        stride = stride / 2u;
    }

    if (local_id.x == 0u) {
        partials[group_id.x] = scratch[0u];
    }
}
`
