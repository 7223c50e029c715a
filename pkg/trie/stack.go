package trie

// frame is a pending range of sibling nodes together with the length the
// output word had when the range was queued.
type frame struct {
	start  int
	end    int
	outLen int
}

// initialStackFrames is large enough that real dictionaries never grow it.
const initialStackFrames = 64

type stack struct {
	frames []frame
}

func newStack() *stack {
	return &stack{frames: make([]frame, 0, initialStackFrames)}
}

func (s *stack) push(start, end, outLen int) {
	if len(s.frames) == cap(s.frames) {
		grown := make([]frame, len(s.frames), 2*cap(s.frames))
		copy(grown, s.frames)
		s.frames = grown
	}
	s.frames = append(s.frames, frame{start: start, end: end, outLen: outLen})
}

func (s *stack) top() frame {
	return s.frames[len(s.frames)-1]
}

func (s *stack) pop() frame {
	f := s.top()
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

func (s *stack) empty() bool {
	return len(s.frames) == 0
}

func (s *stack) len() int {
	return len(s.frames)
}
