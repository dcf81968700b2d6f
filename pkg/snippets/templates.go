package snippets

const threejsSceneText = `import * as THREE from 'three';

const scene = new THREE.Scene();
scene.background = new THREE.Color({{.Background}});

const camera = new THREE.PerspectiveCamera(
  {{.Fov}},
  window.innerWidth / window.innerHeight,
  0.1,
  1000
);
camera.position.z = 5;

const renderer = new THREE.WebGLRenderer({ antialias: true });
renderer.setSize(window.innerWidth, window.innerHeight);
renderer.setPixelRatio(Math.min(window.devicePixelRatio, 2));
document.body.appendChild(renderer.domElement);

window.addEventListener('resize', () => {
  camera.aspect = window.innerWidth / window.innerHeight;
  camera.updateProjectionMatrix();
  renderer.setSize(window.innerWidth, window.innerHeight);
});

function animate() {
  requestAnimationFrame(animate);
  renderer.render(scene, camera);
}
animate();
`

const r3fComponentText = `import { Canvas } from '@react-three/fiber';
import { OrbitControls } from '@react-three/drei';

export default function {{.Component}}() {
  return (
    <Canvas camera={{"{{"}} position: [0, 0, 5], fov: 75 {{"}}"}}>
      <ambientLight intensity={0.5} />
      <directionalLight position={[10, 10, 5]} intensity={1} />
      <mesh>
        <boxGeometry args={[1, 1, 1]} />
        <meshStandardMaterial color="hotpink" />
      </mesh>
      <OrbitControls enableDamping />
    </Canvas>
  );
}
`

const gsapTimelineText = `import gsap from 'gsap';

const tl = gsap.timeline({ defaults: { ease: 'power3.out' } });

tl.from('{{.Selector}}', {
  y: 60,
  opacity: 0,
  duration: {{.Duration}},
  stagger: 0.15,
});
`

const gsapScrollTriggerText = `import gsap from 'gsap';
import { ScrollTrigger } from 'gsap/ScrollTrigger';

gsap.registerPlugin(ScrollTrigger);

gsap.to('{{.Selector}}', {
  scrollTrigger: {
    trigger: '{{.Trigger}}',
    start: 'top top',
    end: 'bottom top',
    scrub: true,
    pin: true,
  },
  xPercent: -100,
  ease: 'none',
});
`

const pixiAppText = `import { Application, Graphics } from 'pixi.js';

const app = new Application();
await app.init({
  background: {{.Background}},
  resizeTo: window,
  antialias: true,
});
document.body.appendChild(app.canvas);

const circle = new Graphics().circle(0, 0, 40).fill(0xe94560);
circle.position.set(app.screen.width / 2, app.screen.height / 2);
app.stage.addChild(circle);

app.ticker.add((ticker) => {
  circle.rotation += 0.01 * ticker.deltaTime;
});
`

const locomotiveConfigText = `import LocomotiveScroll from 'locomotive-scroll';

const scroll = new LocomotiveScroll({
  el: document.querySelector('[data-scroll-container]'),
  smooth: true,
  multiplier: {{.Multiplier}},
  lerp: 0.08,
});

window.addEventListener('load', () => scroll.update());
`

const barbaTransitionText = `import barba from '@barba/core';
import gsap from 'gsap';

barba.init({
  transitions: [
    {
      name: 'fade',
      leave(data) {
        return gsap.to(data.current.container, {
          opacity: 0,
          duration: {{.Duration}},
        });
      },
      enter(data) {
        return gsap.from(data.next.container, {
          opacity: 0,
          duration: {{.Duration}},
        });
      },
    },
  ],
});
`

const framerVariantsText = `import { motion } from 'framer-motion';

const container = {
  hidden: { opacity: 0 },
  show: {
    opacity: 1,
    transition: { staggerChildren: {{.Stagger}} },
  },
};

const item = {
  hidden: { y: 20, opacity: 0 },
  show: { y: 0, opacity: 1 },
};

export function List({ children }) {
  return (
    <motion.ul variants={container} initial="hidden" animate="show">
      {children.map((child, i) => (
        <motion.li key={i} variants={item}>
          {child}
        </motion.li>
      ))}
    </motion.ul>
  );
}
`
