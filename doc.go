// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/* Package vesselfigs generates the figures for a neurovascular coupling
review paper from pre-processed two-photon recordings.

The pipeline loads per-animal processed data files (merged behavioral and
vessel-diameter trials, resting baselines, LFP spectrograms), runs four
analysis passes across a fixed set of animals (evoked response,
cross-correlation, coherence, power spectrum), accumulates the results
into per-animal comparison tables, and renders the paper figures plus an
illustrative single-trial figure.

Run the pipeline with the vesselfigs command under cmd/.
*/
package vesselfigs
