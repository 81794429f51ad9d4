package jww

// decodeLayerGroups reads the 16 layer groups, each with 16 layers, in the
// exact field order the format uses. This order is fixed by the file format
// and must be reproduced exactly: state, write_layer, scale, protect, then
// 16 layers (each state, protect, name), then the group name.
func decodeLayerGroups(r *Reader, groups *[16]LayerGroup) error {
	for g := 0; g < 16; g++ {
		lg := &groups[g]

		state, err := r.U32()
		if err != nil {
			return err
		}
		lg.State = state

		writeLayer, err := r.U32()
		if err != nil {
			return err
		}
		lg.WriteLayer = writeLayer

		scale, err := r.F64()
		if err != nil {
			return err
		}
		lg.Scale = scale

		protect, err := r.U32()
		if err != nil {
			return err
		}
		lg.Protect = protect

		for l := 0; l < 16; l++ {
			layer := &lg.Layers[l]

			layState, err := r.U32()
			if err != nil {
				return err
			}
			layer.State = layState

			layProtect, err := r.U32()
			if err != nil {
				return err
			}
			layer.Protect = layProtect

			name, err := r.ReadSJISLenPrefixed8()
			if err != nil {
				return err
			}
			layer.Name = name
		}

		name, err := r.ReadSJISLenPrefixed8()
		if err != nil {
			return err
		}
		lg.Name = name
	}
	return nil
}
