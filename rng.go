package vadpcm

// rngNext advances the dither generator one step. The multiplier and
// increment come from Steele & Vigna's table of LCG parameters with good
// spectral properties; the increment is pi*2^29 truncated to 32 bits, as in
// the reference codec's codec/random.h.
func rngNext(state uint32) uint32 {
	return state*0xd9f5 + 0x6487ed51
}
