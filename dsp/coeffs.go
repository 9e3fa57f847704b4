package dsp

// Stage-1 anti-aliasing lowpass prototype. 61 taps, linear phase, unity DC
// gain. Passband 0-100 kHz, stopband above 150 kHz (>60 dB) at the 2.5 MHz
// input rate.
var s1Coeffs = [s1Taps]float32{
	-0.00031204, -0.00004545, 0.00027904, 0.00068462, 0.00117369, 0.00171261, 0.00222291, 0.00258239, 0.00263792, 0.00222986,
	0.00122527, -0.00044472, -0.00274968, -0.00553362, -0.00850401, -0.01124041, -0.01322480, -0.01389213, -0.01269630, -0.00918414,
	-0.00306760, 0.00571594, 0.01696486, 0.03020315, 0.04470262, 0.05953716, 0.07366408, 0.08602410, 0.09564828, 0.10175928,
	0.10385425, 0.10175928, 0.09564828, 0.08602410, 0.07366408, 0.05953716, 0.04470262, 0.03020315, 0.01696486, 0.00571594,
	-0.00306760, -0.00918414, -0.01269630, -0.01389213, -0.01322480, -0.01124041, -0.00850401, -0.00553362, -0.00274968, -0.00044472,
	0.00122527, 0.00222986, 0.00263792, 0.00258239, 0.00222291, 0.00171261, 0.00117369, 0.00068462, 0.00027904, -0.00004545,
	-0.00031204,
}

// Stage-2 polyphase prototype. 729 taps, linear phase, DC gain 13.0
// (+22.3 dB, compensating the x13 interpolation), stopband >80 dB at the
// 6.5 MHz virtual rate. Decomposed into 13 branches of 57 reversed taps at
// construction.
var s2CoeffsRaw = [s2TapsTotal]float32{
	0.00006223, 0.00008348, 0.00010558, 0.00012822, 0.00015103, 0.00017364, 0.00019563, 0.00021657, 0.00023602, 0.00025352,
	0.00026862, 0.00028088, 0.00028987, 0.00029518, 0.00029645, 0.00029335, 0.00028560, 0.00027297, 0.00025530, 0.00023250,
	0.00020457, 0.00017156, 0.00013363, 0.00009102, 0.00004406, -0.00000685, -0.00006118, -0.00011837, -0.00017773, -0.00023854,
	-0.00029997, -0.00036117, -0.00042123, -0.00047919, -0.00053408, -0.00058492, -0.00063073, -0.00067054, -0.00070345, -0.00072856,
	-0.00074507, -0.00075225, -0.00074948, -0.00073624, -0.00071213, -0.00067689, -0.00063041, -0.00057275, -0.00050410, -0.00042486,
	-0.00033556, -0.00023693, -0.00012986, -0.00001541, 0.00010521, 0.00023065, 0.00035940, 0.00048986, 0.00062030, 0.00074893,
	0.00087389, 0.00099328, 0.00110520, 0.00120776, 0.00129911, 0.00137746, 0.00144115, 0.00148862, 0.00151848, 0.00152951,
	0.00152070, 0.00149128, 0.00144071, 0.00136874, 0.00127538, 0.00116095, 0.00102608, 0.00087168, 0.00069899, 0.00050954,
	0.00030517, 0.00008797, -0.00013967, -0.00037515, -0.00061564, -0.00085814, -0.00109948, -0.00133640, -0.00156555, -0.00178356,
	-0.00198708, -0.00217281, -0.00233757, -0.00247834, -0.00259230, -0.00267687, -0.00272980, -0.00274914, -0.00273333, -0.00268124,
	-0.00259216, -0.00246584, -0.00230256, -0.00210307, -0.00186864, -0.00160106, -0.00130261, -0.00097608, -0.00062475, -0.00025231,
	0.00013710, 0.00053898, 0.00094851, 0.00136058, 0.00176987, 0.00217094, 0.00255821, 0.00292613, 0.00326921, 0.00358207,
	0.00385958, 0.00409687, 0.00428946, 0.00443327, 0.00452477, 0.00456097, 0.00453952, 0.00445874, 0.00431768, 0.00411615,
	0.00385475, 0.00353489, 0.00315879, 0.00272948, 0.00225079, 0.00172731, 0.00116439, 0.00056804, -0.00005507, -0.00069772,
	-0.00135221, -0.00201043, -0.00266396, -0.00330420, -0.00392241, -0.00450990, -0.00505810, -0.00555867, -0.00600365, -0.00638554,
	-0.00669745, -0.00693318, -0.00708733, -0.00715538, -0.00713383, -0.00702020, -0.00681315, -0.00651250, -0.00611931, -0.00563584,
	-0.00506559, -0.00441331, -0.00368495, -0.00288760, -0.00202948, -0.00111983, -0.00016881, 0.00081255, 0.00181253, 0.00281883,
	0.00381869, 0.00479909, 0.00574686, 0.00664889, 0.00749226, 0.00826447, 0.00895353, 0.00954824, 0.01003823, 0.01041425,
	0.01066821, 0.01079337, 0.01078447, 0.01063781, 0.01035138, 0.00992489, 0.00935985, 0.00865958, 0.00782926, 0.00687585,
	0.00580809, 0.00463646, 0.00337303, 0.00203138, 0.00062649, -0.00082545, -0.00230721, -0.00380069, -0.00528715, -0.00674743,
	-0.00816217, -0.00951208, -0.01077816, -0.01194198, -0.01298589, -0.01389331, -0.01464896, -0.01523907, -0.01565160, -0.01587648,
	-0.01590574, -0.01573368, -0.01535704, -0.01477506, -0.01398957, -0.01300505, -0.01182863, -0.01047007, -0.00894172, -0.00725840,
	-0.00543732, -0.00349788, -0.00146152, 0.00064853, 0.00280748, 0.00498923, 0.00716673, 0.00931224, 0.01139769, 0.01339500,
	0.01527647, 0.01701514, 0.01858509, 0.01996189, 0.02112285, 0.02204744, 0.02271754, 0.02311775, 0.02323569, 0.02306220,
	0.02259153, 0.02182153, 0.02075379, 0.01939366, 0.01775034, 0.01583683, 0.01366988, 0.01126989, 0.00866075, 0.00586962,
	0.00292669, -0.00013512, -0.00328049, -0.00647209, -0.00967096, -0.01283700, -0.01592941, -0.01890715, -0.02172949, -0.02435652,
	-0.02674963, -0.02887205, -0.03068936, -0.03216995, -0.03328555, -0.03401158, -0.03432764, -0.03421783, -0.03367109, -0.03268145,
	-0.03124827, -0.02937639, -0.02707622, -0.02436378, -0.02126065, -0.01779388, -0.01399582, -0.00990387, -0.00556016, -0.00101120,
	0.00369256, 0.00849721, 0.01334598, 0.01817979, 0.02293788, 0.02755853, 0.03197977, 0.03614006, 0.03997908, 0.04343847,
	0.04646260, 0.04899927, 0.05100048, 0.05242308, 0.05322946, 0.05338817, 0.05287443, 0.05167070, 0.04976706, 0.04716159,
	0.04386067, 0.03987915, 0.03524046, 0.02997665, 0.02412829, 0.01774434, 0.01088181, 0.00360548, -0.00401259, -0.01189360,
	-0.01995265, -0.02809939, -0.03623888, -0.04427239, -0.05209830, -0.05961309, -0.06671236, -0.07329178, -0.07924826, -0.08448092,
	-0.08889222, -0.09238899, -0.09488349, -0.09629439, -0.09654773, -0.09557785, -0.09332819, -0.08975211, -0.08481352, -0.07848750,
	-0.07076078, -0.06163212, -0.05111262, -0.03922583, -0.02600783, -0.01150713, 0.00421551, 0.02108744, 0.03902451, 0.05793165,
	0.07770356, 0.09822543, 0.11937385, 0.14101777, 0.16301956, 0.18523608, 0.20751995, 0.22972070, 0.25168610, 0.27326347,
	0.29430098, 0.31464897, 0.33416129, 0.35269658, 0.37011953, 0.38630207, 0.40112455, 0.41447680, 0.42625912, 0.43638319,
	0.44477288, 0.45136492, 0.45610949, 0.45897070, 0.45992685, 0.45897070, 0.45610949, 0.45136492, 0.44477288, 0.43638319,
	0.42625912, 0.41447680, 0.40112455, 0.38630207, 0.37011953, 0.35269658, 0.33416129, 0.31464897, 0.29430098, 0.27326347,
	0.25168610, 0.22972070, 0.20751995, 0.18523608, 0.16301956, 0.14101777, 0.11937385, 0.09822543, 0.07770356, 0.05793165,
	0.03902451, 0.02108744, 0.00421551, -0.01150713, -0.02600783, -0.03922583, -0.05111262, -0.06163212, -0.07076078, -0.07848750,
	-0.08481352, -0.08975211, -0.09332819, -0.09557785, -0.09654773, -0.09629439, -0.09488349, -0.09238899, -0.08889222, -0.08448092,
	-0.07924826, -0.07329178, -0.06671236, -0.05961309, -0.05209830, -0.04427239, -0.03623888, -0.02809939, -0.01995265, -0.01189360,
	-0.00401259, 0.00360548, 0.01088181, 0.01774434, 0.02412829, 0.02997665, 0.03524046, 0.03987915, 0.04386067, 0.04716159,
	0.04976706, 0.05167070, 0.05287443, 0.05338817, 0.05322946, 0.05242308, 0.05100048, 0.04899927, 0.04646260, 0.04343847,
	0.03997908, 0.03614006, 0.03197977, 0.02755853, 0.02293788, 0.01817979, 0.01334598, 0.00849721, 0.00369256, -0.00101120,
	-0.00556016, -0.00990387, -0.01399582, -0.01779388, -0.02126065, -0.02436378, -0.02707622, -0.02937639, -0.03124827, -0.03268145,
	-0.03367109, -0.03421783, -0.03432764, -0.03401158, -0.03328555, -0.03216995, -0.03068936, -0.02887205, -0.02674963, -0.02435652,
	-0.02172949, -0.01890715, -0.01592941, -0.01283700, -0.00967096, -0.00647209, -0.00328049, -0.00013512, 0.00292669, 0.00586962,
	0.00866075, 0.01126989, 0.01366988, 0.01583683, 0.01775034, 0.01939366, 0.02075379, 0.02182153, 0.02259153, 0.02306220,
	0.02323569, 0.02311775, 0.02271754, 0.02204744, 0.02112285, 0.01996189, 0.01858509, 0.01701514, 0.01527647, 0.01339500,
	0.01139769, 0.00931224, 0.00716673, 0.00498923, 0.00280748, 0.00064853, -0.00146152, -0.00349788, -0.00543732, -0.00725840,
	-0.00894172, -0.01047007, -0.01182863, -0.01300505, -0.01398957, -0.01477506, -0.01535704, -0.01573368, -0.01590574, -0.01587648,
	-0.01565160, -0.01523907, -0.01464896, -0.01389331, -0.01298589, -0.01194198, -0.01077816, -0.00951208, -0.00816217, -0.00674743,
	-0.00528715, -0.00380069, -0.00230721, -0.00082545, 0.00062649, 0.00203138, 0.00337303, 0.00463646, 0.00580809, 0.00687585,
	0.00782926, 0.00865958, 0.00935985, 0.00992489, 0.01035138, 0.01063781, 0.01078447, 0.01079337, 0.01066821, 0.01041425,
	0.01003823, 0.00954824, 0.00895353, 0.00826447, 0.00749226, 0.00664889, 0.00574686, 0.00479909, 0.00381869, 0.00281883,
	0.00181253, 0.00081255, -0.00016881, -0.00111983, -0.00202948, -0.00288760, -0.00368495, -0.00441331, -0.00506559, -0.00563584,
	-0.00611931, -0.00651250, -0.00681315, -0.00702020, -0.00713383, -0.00715538, -0.00708733, -0.00693318, -0.00669745, -0.00638554,
	-0.00600365, -0.00555867, -0.00505810, -0.00450990, -0.00392241, -0.00330420, -0.00266396, -0.00201043, -0.00135221, -0.00069772,
	-0.00005507, 0.00056804, 0.00116439, 0.00172731, 0.00225079, 0.00272948, 0.00315879, 0.00353489, 0.00385475, 0.00411615,
	0.00431768, 0.00445874, 0.00453952, 0.00456097, 0.00452477, 0.00443327, 0.00428946, 0.00409687, 0.00385958, 0.00358207,
	0.00326921, 0.00292613, 0.00255821, 0.00217094, 0.00176987, 0.00136058, 0.00094851, 0.00053898, 0.00013710, -0.00025231,
	-0.00062475, -0.00097608, -0.00130261, -0.00160106, -0.00186864, -0.00210307, -0.00230256, -0.00246584, -0.00259216, -0.00268124,
	-0.00273333, -0.00274914, -0.00272980, -0.00267687, -0.00259230, -0.00247834, -0.00233757, -0.00217281, -0.00198708, -0.00178356,
	-0.00156555, -0.00133640, -0.00109948, -0.00085814, -0.00061564, -0.00037515, -0.00013967, 0.00008797, 0.00030517, 0.00050954,
	0.00069899, 0.00087168, 0.00102608, 0.00116095, 0.00127538, 0.00136874, 0.00144071, 0.00149128, 0.00152070, 0.00152951,
	0.00151848, 0.00148862, 0.00144115, 0.00137746, 0.00129911, 0.00120776, 0.00110520, 0.00099328, 0.00087389, 0.00074893,
	0.00062030, 0.00048986, 0.00035940, 0.00023065, 0.00010521, -0.00001541, -0.00012986, -0.00023693, -0.00033556, -0.00042486,
	-0.00050410, -0.00057275, -0.00063041, -0.00067689, -0.00071213, -0.00073624, -0.00074948, -0.00075225, -0.00074507, -0.00072856,
	-0.00070345, -0.00067054, -0.00063073, -0.00058492, -0.00053408, -0.00047919, -0.00042123, -0.00036117, -0.00029997, -0.00023854,
	-0.00017773, -0.00011837, -0.00006118, -0.00000685, 0.00004406, 0.00009102, 0.00013363, 0.00017156, 0.00020457, 0.00023250,
	0.00025530, 0.00027297, 0.00028560, 0.00029335, 0.00029645, 0.00029518, 0.00028987, 0.00028088, 0.00026862, 0.00025352,
	0.00023602, 0.00021657, 0.00019563, 0.00017364, 0.00015103, 0.00012822, 0.00010558, 0.00008348, 0.00006223,
}
